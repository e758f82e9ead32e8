package repository

import "errors"

var (
	// 該当なし
	ErrNotFound = errors.New("not found")
	// unique制約違反、または条件付き更新で0件
	ErrConflict = errors.New("conflict")
)
