// Package protocol describes the fsrelay wire format: newline-terminated
// ASCII command lines answered with raw bytes.
//
//	ls [path]                         names, one per line, then 0x00
//	cd <path>                         new absolute path + "\n", then 0x00
//	cp <src> <dst> upload             client sends int32 size + payload, server answers "OK\n"
//	cp <src> <dst> download           server sends int64 size + payload
//
// All size fields are little-endian two's complement integers. A download
// size of zero carries no payload and covers directories, missing files,
// empty files and internal errors alike.
package protocol

// Command names.
const (
	CmdList   = "ls"
	CmdChdir  = "cd"
	CmdCopy   = "cp"
	DirUpload = "upload"
	DirDown   = "download"
)

const (
	// LineBufferSize is the longest accepted command line, newline included.
	LineBufferSize = 4096

	// MaxUploadSize is the largest payload a single upload may declare.
	MaxUploadSize = 64 * 1024 * 1024

	UploadSizeWidth   = 4
	DownloadSizeWidth = 8

	// Terminator ends every ls and cd response.
	Terminator byte = 0
)

// Fixed response texts.
const (
	ErrOpenDirText    = "Error opening directory\n"
	ErrChangeDirText  = "Error changing directory\n"
	UsageCopyText     = "Usage: cp <src> <dst> <upload|download>\n"
	ErrUploadSizeText = "Error: invalid upload size\n"
	ErrUploadText     = "Error\n"
	OKText            = "OK\n"
)

// Direction selects the transfer mode of a cp command.
type Direction string

const (
	Upload   Direction = DirUpload
	Download Direction = DirDown
)

// ParseDirection maps the third cp argument to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case DirUpload:
		return Upload, true
	case DirDown:
		return Download, true
	default:
		return "", false
	}
}
