package csvfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"qr-system/internal/pkg/logger"
)

// TempFile 单次请求范围内的上传临时文件
// 调用方必须 defer Remove()，保证任何退出路径都会清理
type TempFile struct {
	path    string
	removed bool
}

// SaveTemp 将上传内容写入临时文件
// 文件名用时间戳加原始扩展名，目录不存在时自动创建
func SaveTemp(src io.Reader, dir, originalName string) (*TempFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %v", err)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(originalName))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("创建临时文件失败: %v", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("写入临时文件失败: %v", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("写入临时文件失败: %v", err)
	}

	return &TempFile{path: path}, nil
}

// Path 临时文件的磁盘路径
func (f *TempFile) Path() string {
	return f.path
}

// Open 打开临时文件用于读取
func (f *TempFile) Open() (*os.File, error) {
	return os.Open(f.path)
}

// Remove 删除临时文件，重复调用无副作用
// 删除失败只记录日志，不影响请求结果
func (f *TempFile) Remove() {
	if f == nil || f.removed {
		return
	}
	f.removed = true
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		logger.Warnf("删除临时文件失败 %s: %v", f.path, err)
	}
}
