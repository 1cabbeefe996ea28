//go:build !windows

package fileops

func copyFile(src, dst string, prog *copyProgress) error {
	return copyFileStream(src, dst, prog)
}
