package csvfile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

var utf8bom = []byte{0xEF, 0xBB, 0xBF}

// Reader 逐行读取CSV，第一行作为表头
// 对每行字段数不做强制要求：缺失的单元格按空字符串处理，多余的丢弃
type Reader struct {
	reader  *csv.Reader
	headers []string
}

// NewReader 创建CSV读取器并读出表头
// 自动跳过UTF-8 BOM头
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8bom)); err == nil && bytes.Equal(head, utf8bom) {
		br.Discard(len(utf8bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1 // 允许每行不同的字段数

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV文件为空")
	}
	if err != nil {
		return nil, fmt.Errorf("读取CSV表头失败: %v", err)
	}

	return &Reader{reader: cr, headers: headers}, nil
}

// Headers 返回表头列名，按文件中的顺序
func (r *Reader) Headers() []string {
	return r.headers
}

// Next 读取下一行，映射为 列名->单元格值
// 文件读完返回 io.EOF
func (r *Reader) Next() (map[string]string, error) {
	record, err := r.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("读取CSV数据行失败: %v", err)
	}

	row := make(map[string]string, len(r.headers))
	for i, name := range r.headers {
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	return row, nil
}

// ReadAll 读取剩余所有行
func (r *Reader) ReadAll() ([]map[string]string, error) {
	var rows []map[string]string
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
