package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 二维码类型
const (
	TypeURL = "url"
	TypeCSV = "csv"
)

// CSVRow 一行CSV数据，列名到单元格值的映射
type CSVRow map[string]string

// CSVRows 整批CSV数据，以JSON文本落库
type CSVRows []CSVRow

func (r CSVRows) Value() (driver.Value, error) {
	if len(r) == 0 {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *CSVRows) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("无法将 %T 扫描为 CSVRows", value)
	}
}

// StringList 字符串列表，以JSON文本落库
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("无法将 %T 扫描为 StringList", value)
	}
}

// QRCode 生成的二维码记录
// CSVData/CSVHeaders 仅在 type=csv 时存在，整批数据冗余保存在每条行记录上
type QRCode struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Content    string         `gorm:"type:text" json:"content"`
	ImageURL   string         `gorm:"type:longtext" json:"imageUrl"` // data URI形式的PNG图片
	Type       string         `gorm:"size:10;index" json:"type"`     // url, csv
	CSVData    CSVRows        `gorm:"type:longtext" json:"csvData,omitempty"`
	CSVHeaders StringList     `gorm:"type:text" json:"csvHeaders,omitempty"`
	ScanCount  int            `gorm:"default:0" json:"scanCount"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
