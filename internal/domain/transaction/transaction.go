package transaction

import "context"

// Tx は競合チェックと書き込みを同一トランザクションに束ねるための抽象化
// ドメイン層が具体的なドライバ（sqlx等）に依存しないようにする
type Tx interface {
	Commit() error
	Rollback() error
}

// Manager はトランザクションの開始点
type Manager interface {
	Begin(ctx context.Context) (Tx, error)
}
