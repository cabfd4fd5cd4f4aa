//go:build !android

package storage

// prepareDir gdata 在桌面平台会自己创建目录
func prepareDir() error {
	return nil
}
