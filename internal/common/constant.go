package common

// DefaultServerAddr is the loopback endpoint the server binds by default and
// the client dials by default.
const DefaultServerAddr = "127.0.0.1:50052"
