// Package client speaks the fsrelay command protocol from the client side.
//
// # Overview
//
// A Client owns one TCP connection to the server and issues requests on it
// strictly in sequence:
//
//   - List and Chdir send ls and cd lines and read the zero-terminated
//     answer.
//   - Upload and UploadFile send a cp … upload line followed by the int32
//     size and the payload, then wait for "OK\n".
//   - Download sends a cp … download line and copies the int64-sized
//     payload into an io.Writer.
//   - DownloadTree repeats Download over a remote directory.
//
// # Error Handling
//
// Failures reported by the server through its fixed texts are returned as
// *RemoteError, which matches common.ErrRemote under errors.Is. Sizes the
// server would refuse are rejected locally with common.ErrUploadSize. A
// stream that ends mid-response yields common.ErrConnectionClosed.
//
// # Concurrency & Contexts
//
// A Client is not safe for concurrent use. Every receive is bounded by the
// idle timeout passed to Dial; cancelling the context of an operation in
// flight closes the connection, since the stream can no longer be framed.
package client
