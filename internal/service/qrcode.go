package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"qr-system/internal/model"
	"qr-system/internal/pkg/csvfile"
	"qr-system/internal/pkg/logger"
	"qr-system/internal/pkg/qrencode"
)

var (
	// ErrInvalidURL 输入不是合法的绝对URL
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("qr code not found")
)

// 历史记录单页上限
const maxHistoryLimit = 50

type QRCodeService struct {
	db *gorm.DB
}

func NewQRCodeService(db *gorm.DB) *QRCodeService {
	return &QRCodeService{db: db}
}

// GenerateFromURL 为单个URL生成二维码并入库
func (s *QRCodeService) GenerateFromURL(rawURL string) (*model.QRCode, error) {
	if rawURL == "" {
		return nil, ErrInvalidURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidURL
	}

	dataURI, err := qrencode.DataURI(rawURL)
	if err != nil {
		return nil, err
	}

	qr := &model.QRCode{
		Content:  rawURL,
		ImageURL: dataURI,
		Type:     model.TypeURL,
	}
	if err := s.db.Create(qr).Error; err != nil {
		return nil, fmt.Errorf("保存二维码记录失败: %v", err)
	}

	return qr, nil
}

// BatchItem CSV批量生成结果的一项
type BatchItem struct {
	ID     uint   `json:"id"`
	QRCode string `json:"qrCode"`
}

// GenerateFromCSV 解析CSV并为每行生成一个二维码
// 整批数据和表头冗余保存在每条行记录上
// 各行并发编码入库，任意一行失败则整批失败（已写入的行不回滚）
func (s *QRCodeService) GenerateFromCSV(r io.Reader) ([]BatchItem, error) {
	reader, err := csvfile.NewReader(r)
	if err != nil {
		return nil, err
	}

	headers := model.StringList(reader.Headers())
	rawRows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make(model.CSVRows, len(rawRows))
	for i, raw := range rawRows {
		rows[i] = model.CSVRow(raw)
	}

	items := make([]BatchItem, len(rows))
	g := new(errgroup.Group)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			content, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("序列化CSV行失败: %v", err)
			}

			dataURI, err := qrencode.DataURI(string(content))
			if err != nil {
				return err
			}

			qr := &model.QRCode{
				Content:    string(content),
				ImageURL:   dataURI,
				Type:       model.TypeCSV,
				CSVData:    rows,
				CSVHeaders: headers,
			}
			if err := s.db.Create(qr).Error; err != nil {
				return fmt.Errorf("保存二维码记录失败: %v", err)
			}

			items[i] = BatchItem{ID: qr.ID, QRCode: dataURI}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return items, nil
}

// HistoryQuery 历史记录查询条件
type HistoryQuery struct {
	Page      int
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
}

// History 按创建时间倒序分页返回历史记录
// limit 超过上限按上限截断
func (s *QRCodeService) History(q HistoryQuery) ([]model.QRCode, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > maxHistoryLimit {
		q.Limit = maxHistoryLimit
	}

	query := s.db.Model(&model.QRCode{})
	if q.StartDate != nil {
		query = query.Where("created_at >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		query = query.Where("created_at <= ?", *q.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计历史记录失败: %v", err)
	}

	var codes []model.QRCode
	err := query.Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&codes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询历史记录失败: %v", err)
	}

	return codes, total, nil
}

// Delete 删除一条记录
// 记录不存在视为成功，重复删除幂等
func (s *QRCodeService) Delete(id uint) error {
	result := s.db.Delete(&model.QRCode{}, id)
	if result.Error != nil {
		return fmt.Errorf("删除二维码记录失败: %v", result.Error)
	}
	return nil
}

// Share 分享一条记录
// 外部通知为尽力而为，这里只校验存在性并留审计日志
func (s *QRCodeService) Share(id uint) error {
	var qr model.QRCode
	if err := s.db.First(&qr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("查询二维码记录失败: %v", err)
	}

	logger.Infof("分享二维码: id=%d type=%s share_ref=%s", qr.ID, qr.Type, uuid.New().String())
	return nil
}

// Scan 上报一次扫码，匹配内容的记录扫码次数加一
// 没有匹配记录时不视为错误
func (s *QRCodeService) Scan(content string) (int64, error) {
	result := s.db.Model(&model.QRCode{}).
		Where("content = ?", content).
		UpdateColumn("scan_count", gorm.Expr("scan_count + ?", 1))
	if result.Error != nil {
		return 0, fmt.Errorf("更新扫码次数失败: %v", result.Error)
	}
	return result.RowsAffected, nil
}
