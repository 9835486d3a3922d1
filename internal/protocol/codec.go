package protocol

import "encoding/binary"

// ValidUploadSize reports whether n is an acceptable declared upload size.
func ValidUploadSize(n int32) bool {
	return n > 0 && n <= MaxUploadSize
}

func EncodeUploadSize(n int32) [UploadSizeWidth]byte {
	var b [UploadSizeWidth]byte
	binary.LittleEndian.PutUint32(b[:], uint32(n))
	return b
}

func DecodeUploadSize(b [UploadSizeWidth]byte) int32 {
	return int32(binary.LittleEndian.Uint32(b[:]))
}

func EncodeDownloadSize(n int64) [DownloadSizeWidth]byte {
	var b [DownloadSizeWidth]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	return b
}

func DecodeDownloadSize(b [DownloadSizeWidth]byte) int64 {
	return int64(binary.LittleEndian.Uint64(b[:]))
}
