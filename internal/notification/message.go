package notification

import "context"

// 送るメール1通
type Message struct {
	To      string
	Subject string
	HTML    string
}

// 実際に送る部品。SMTPやテスト用の偽物
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
