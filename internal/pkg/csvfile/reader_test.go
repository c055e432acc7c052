package csvfile

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReaderHeadersAndRows(t *testing.T) {
	r, err := NewReader(strings.NewReader("name,email\nTom,tom@example.com\nAmy,amy@example.com\n"))
	if err != nil {
		t.Fatalf("NewReader 失败: %v", err)
	}

	headers := r.Headers()
	if len(headers) != 2 || headers[0] != "name" || headers[1] != "email" {
		t.Fatalf("表头错误: %v", headers)
	}

	row, err := r.Next()
	if err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if row["name"] != "Tom" || row["email"] != "tom@example.com" {
		t.Errorf("第一行错误: %v", row)
	}

	row, err = r.Next()
	if err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if row["name"] != "Amy" {
		t.Errorf("第二行错误: %v", row)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("期望 io.EOF, 得到 %v", err)
	}
}

func TestReaderSkipsBOM(t *testing.T) {
	r, err := NewReader(strings.NewReader("\xEF\xBB\xBFname,city\nTom,Paris\n"))
	if err != nil {
		t.Fatalf("NewReader 失败: %v", err)
	}
	if r.Headers()[0] != "name" {
		t.Errorf("BOM未被跳过: %q", r.Headers()[0])
	}
}

func TestReaderRaggedRows(t *testing.T) {
	r, err := NewReader(strings.NewReader("a,b,c\n1,2\n1,2,3,4\n"))
	if err != nil {
		t.Fatalf("NewReader 失败: %v", err)
	}

	// 缺失的单元格补空串
	row, err := r.Next()
	if err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if row["c"] != "" {
		t.Errorf("缺失单元格应为空串, 得到 %q", row["c"])
	}

	// 多余的单元格被丢弃
	row, err = r.Next()
	if err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if len(row) != 3 || row["c"] != "3" {
		t.Errorf("多余单元格处理错误: %v", row)
	}
}

func TestReaderEmptyFile(t *testing.T) {
	if _, err := NewReader(strings.NewReader("")); err == nil {
		t.Error("空文件应当返回错误")
	}
}

func TestReadAll(t *testing.T) {
	r, err := NewReader(strings.NewReader("k\n1\n2\n3\n"))
	if err != nil {
		t.Fatalf("NewReader 失败: %v", err)
	}
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll 失败: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("期望3行, 得到 %d", len(rows))
	}
}

func TestSaveTempAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	f, err := SaveTemp(strings.NewReader("name\nTom\n"), dir, "batch.csv")
	if err != nil {
		t.Fatalf("SaveTemp 失败: %v", err)
	}

	if filepath.Ext(f.Path()) != ".csv" {
		t.Errorf("临时文件应保留扩展名: %s", f.Path())
	}
	data, err := os.ReadFile(f.Path())
	if err != nil {
		t.Fatalf("读取临时文件失败: %v", err)
	}
	if string(data) != "name\nTom\n" {
		t.Errorf("临时文件内容错误: %q", data)
	}

	f.Remove()
	if _, err := os.Stat(f.Path()); !os.IsNotExist(err) {
		t.Error("Remove 后文件仍存在")
	}

	// 重复删除不应有副作用
	f.Remove()
}
