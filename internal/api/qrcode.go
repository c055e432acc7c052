package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"qr-system/internal/config"
	"qr-system/internal/model"
	"qr-system/internal/pkg/csvfile"
	"qr-system/internal/service"
)

type QRCodeHandler struct {
	svc       *service.QRCodeService
	uploadDir string
	devMode   bool
}

func NewQRCodeHandler(svc *service.QRCodeService, cfg *config.Config) *QRCodeHandler {
	return &QRCodeHandler{
		svc:       svc,
		uploadDir: cfg.Upload.Dir,
		devMode:   cfg.Server.Mode != "release",
	}
}

// fail 统一错误响应
// 详细错误信息只在非生产模式下附带
func (h *QRCodeHandler) fail(c *gin.Context, status int, message string, err error) {
	resp := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil && h.devMode {
		resp["error"] = err.Error()
	}
	c.JSON(status, resp)
}

type GenerateRequest struct {
	URL string `json:"url"`
}

// Generate 根据单个URL生成二维码
func (h *QRCodeHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "URL is required", err)
		return
	}
	if req.URL == "" {
		h.fail(c, http.StatusBadRequest, "URL is required", nil)
		return
	}

	qr, err := h.svc.GenerateFromURL(req.URL)
	if errors.Is(err, service.ErrInvalidURL) {
		h.fail(c, http.StatusBadRequest, "Invalid URL format", nil)
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to generate QR Code", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"qrCode":  qr.ImageURL,
		"message": "QR Code generated successfully",
	})
}

// isCSVContentType 上传内容类型是否为CSV
func isCSVContentType(contentType string) bool {
	mime := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	switch strings.ToLower(mime) {
	case "text/csv", "application/csv":
		return true
	}
	return false
}

// GenerateCSV 上传CSV并为每行生成二维码
// 非CSV类型在解析前即被拒绝；临时文件在任何退出路径上都会删除
func (h *QRCodeHandler) GenerateCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("csvFile")
	if err != nil {
		h.fail(c, http.StatusBadRequest, "No CSV file uploaded", err)
		return
	}

	if !isCSVContentType(fileHeader.Header.Get("Content-Type")) {
		h.fail(c, http.StatusBadRequest, "Only CSV files are allowed", nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}
	defer src.Close()

	tmp, err := csvfile.SaveTemp(src, h.uploadDir, fileHeader.Filename)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to save uploaded file", err)
		return
	}
	defer tmp.Remove()

	f, err := tmp.Open()
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}
	defer f.Close()

	items, err := h.svc.GenerateFromCSV(f)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to generate QR Codes from CSV", err)
		return
	}
	if items == nil {
		items = []service.BatchItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"qrCodes": items,
		"message": "QR Codes generated successfully from CSV",
	})
}

// History 分页返回历史记录
func (h *QRCodeHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	query := service.HistoryQuery{Page: page, Limit: limit}

	if s := c.Query("startDate"); s != "" {
		start, err := time.Parse(time.RFC3339, s)
		if err != nil {
			h.fail(c, http.StatusBadRequest, "Invalid startDate format", err)
			return
		}
		query.StartDate = &start
	}
	if s := c.Query("endDate"); s != "" {
		end, err := time.Parse(time.RFC3339, s)
		if err != nil {
			h.fail(c, http.StatusBadRequest, "Invalid endDate format", err)
			return
		}
		query.EndDate = &end
	}

	codes, total, err := h.svc.History(query)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to fetch QR code history", err)
		return
	}
	if codes == nil {
		codes = []model.QRCode{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"qrCodes": codes,
		"total":   total,
	})
}

// Delete 删除一条记录，重复删除幂等
func (h *QRCodeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid QR code id", err)
		return
	}

	if err := h.svc.Delete(uint(id)); err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to delete QR Code", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "QR Code deleted successfully",
	})
}

type ShareRequest struct {
	QRCodeID uint `json:"qrCodeId" binding:"required"`
}

// Share 分享一条记录，对调用方来说是尽力而为
func (h *QRCodeHandler) Share(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "qrCodeId is required", err)
		return
	}

	err := h.svc.Share(req.QRCodeID)
	if errors.Is(err, service.ErrNotFound) {
		h.fail(c, http.StatusNotFound, "QR Code not found", nil)
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to share QR Code", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "QR Code shared successfully",
	})
}

type ScanRequest struct {
	Content string `json:"content" binding:"required"`
}

// Scan 上报扫码结果，累加匹配记录的扫码次数
func (h *QRCodeHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Content is required", err)
		return
	}

	matched, err := h.svc.Scan(req.Content)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to record scan", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"matched": matched,
		"message": "QR Code scanned successfully",
	})
}
