package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// CopyResult describes a finished copy.
type CopyResult struct {
	Bytes  int64
	SHA256 string
}

// CopyFile streams src into a newly created dst with mode 0o644 and returns the
// number of bytes written and their SHA-256. dst must not exist: the file is
// opened with O_EXCL so an existing export is never overwritten. A partially
// written dst is removed on failure.
func CopyFile(src, dst string) (CopyResult, error) {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode is CopyFile with an explicit mode for dst.
func CopyFileMode(src, dst string, mode os.FileMode) (result CopyResult, err error) {
	in, err := os.Open(src)
	if err != nil {
		return CopyResult{}, fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return CopyResult{}, fmt.Errorf("create destination: %w", err)
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(dst)
		}
	}()

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, hasher), in)
	if err != nil {
		return CopyResult{}, fmt.Errorf("copy bytes: %w", err)
	}
	if err := out.Close(); err != nil {
		return CopyResult{}, fmt.Errorf("close destination: %w", err)
	}

	return CopyResult{Bytes: written, SHA256: hex.EncodeToString(hasher.Sum(nil))}, nil
}

// CopyFileVerified copies like CopyFile, then checks the copied size against
// the source and re-reads dst to confirm its SHA-256. dst is removed on mismatch.
func CopyFileVerified(src, dst string) (CopyResult, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return CopyResult{}, fmt.Errorf("stat source: %w", err)
	}

	result, err := CopyFile(src, dst)
	if err != nil {
		return CopyResult{}, err
	}

	if result.Bytes != srcInfo.Size() {
		_ = os.Remove(dst)
		return CopyResult{}, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), result.Bytes)
	}

	digest, err := HashFile(dst)
	if err != nil {
		_ = os.Remove(dst)
		return CopyResult{}, fmt.Errorf("read back destination: %w", err)
	}
	if digest != result.SHA256 {
		_ = os.Remove(dst)
		return CopyResult{}, errors.New("copy hash mismatch: file corrupted during copy")
	}

	return result, nil
}

// HashFile returns the hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
