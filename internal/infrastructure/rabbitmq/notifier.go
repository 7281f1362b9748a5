package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/ari1008/vegnbio-reservation/internal/pkg/logger"
)

// BookingEvent は予約ライフサイクルの通知メッセージ
type BookingEvent struct {
	Kind         string    `json:"kind"`   // reservation | event_request
	Action       string    `json:"action"` // created | status_changed
	BookingID    string    `json:"booking_id"`
	RestaurantID string    `json:"restaurant_id"`
	CustomerID   string    `json:"customer_id"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Notifier は予約イベントをRabbitMQに発行する
// 通知は本流の予約処理を妨げないよう、失敗してもエラーを返すだけで処理は継続される
type Notifier struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewNotifier はRabbitMQに接続し、耐久キューを宣言する
func NewNotifier(url, queue string) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("RabbitMQ接続に失敗: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("チャネル作成に失敗: %w", err)
	}
	// キューは耐久・非自動削除（ブローカー再起動後もメッセージを保持する）
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("キュー宣言に失敗: %w", err)
	}
	return &Notifier{conn: conn, ch: ch, queue: queue}, nil
}

// Publish は予約イベントを発行する
func (n *Notifier) Publish(ctx context.Context, event BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("イベントのエンコードに失敗: %w", err)
	}
	err = n.ch.PublishWithContext(ctx,
		"",      // デフォルトエクスチェンジ
		n.queue, // ルーティングキー = キュー名
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		logger.Warn("予約イベントの発行に失敗",
			zap.String("booking_id", event.BookingID),
			zap.Error(err),
		)
		return fmt.Errorf("イベント発行に失敗: %w", err)
	}
	return nil
}

// Close は接続を閉じる
func (n *Notifier) Close() error {
	if err := n.ch.Close(); err != nil {
		return err
	}
	return n.conn.Close()
}
