package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/junaidaslam934/acadmic-solution-sub000/config"
)

// Notifier 外部排课生成服务的 fire-and-forget 通知器
//
// 设计说明：
//   - Forward 不阻塞调用方：投递在独立 goroutine 中完成
//   - 失败只记录日志，绝不向调用方传播——核心操作的成败与外部通知隔离
//   - 不重试；生成服务自身对重复投递幂等（以 request_id 去重）
type Notifier struct {
	client  *http.Client
	url     string
	enabled bool
	logger  *zap.Logger
}

// ForwardPayload 转发给生成服务的消息体
type ForwardPayload struct {
	RequestID    string `json:"request_id"`
	SemesterID   string `json:"semester_id"`
	AssignmentID string `json:"assignment_id"`
	CourseID     string `json:"course_id"`
	FileURL      string `json:"file_url"`
	FileName     string `json:"file_name"`
}

// NewNotifier 创建 Notifier 实例
func NewNotifier(cfg *config.GeneratorConfig, logger *zap.Logger) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		client:  &http.Client{Timeout: timeout},
		url:     cfg.URL,
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

// Forward 异步转发大纲文件地址；立即返回
func (n *Notifier) Forward(payload ForwardPayload) {
	if !n.enabled || n.url == "" {
		return
	}
	if payload.RequestID == "" {
		payload.RequestID = uuid.New().String()
	}

	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			n.logger.Warn("生成服务消息序列化失败", zap.Error(err))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			n.logger.Warn("构建生成服务请求失败", zap.Error(err))
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", payload.RequestID)

		resp, err := n.client.Do(req)
		if err != nil {
			n.logger.Warn("转发至生成服务失败",
				zap.String("request_id", payload.RequestID),
				zap.Error(err),
			)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			n.logger.Warn("生成服务返回非成功状态",
				zap.String("request_id", payload.RequestID),
				zap.Int("status", resp.StatusCode),
			)
			return
		}

		n.logger.Info("大纲已转发至生成服务",
			zap.String("request_id", payload.RequestID),
			zap.String("assignment_id", payload.AssignmentID),
		)
	}()
}
