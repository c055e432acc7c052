package qrencode

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestDataURI(t *testing.T) {
	uri, err := DataURI("https://example.com")
	if err != nil {
		t.Fatalf("DataURI 失败: %v", err)
	}

	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("缺少data URI前缀: %s", uri[:30])
	}

	raw := strings.TrimPrefix(uri, "data:image/png;base64,")
	png, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("base64解码失败: %v", err)
	}

	// PNG魔数
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("解码结果不是PNG")
	}
}

func TestDataURIDeterministic(t *testing.T) {
	a, err := DataURI(`{"name":"Tom","email":"tom@example.com"}`)
	if err != nil {
		t.Fatalf("DataURI 失败: %v", err)
	}
	b, err := DataURI(`{"name":"Tom","email":"tom@example.com"}`)
	if err != nil {
		t.Fatalf("DataURI 失败: %v", err)
	}
	if a != b {
		t.Error("相同内容生成了不同的图片")
	}
}

func TestDataURIEmptyContent(t *testing.T) {
	if _, err := DataURI(""); err == nil {
		t.Error("空内容应当返回错误")
	}
}
