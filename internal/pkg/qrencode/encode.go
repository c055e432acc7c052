package qrencode

import (
	"encoding/base64"
	"fmt"

	qrcodelib "github.com/skip2/go-qrcode"
)

// 固定编码参数：最高纠错级别，300x300 PNG
const imageSize = 300

const dataURIPrefix = "data:image/png;base64,"

// DataURI 将任意文本编码为二维码，返回PNG的data URI
// 相同输入总是产生相同输出
func DataURI(content string) (string, error) {
	q, err := qrcodelib.New(content, qrcodelib.Highest)
	if err != nil {
		return "", fmt.Errorf("二维码编码失败: %v", err)
	}

	png, err := q.PNG(imageSize)
	if err != nil {
		return "", fmt.Errorf("二维码渲染失败: %v", err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
