package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// 一覧系クエリの任意条件。gorm の Scopes で組み立てる
type scope = func(*gorm.DB) *gorm.DB

// ゼロ値は「指定なし」として nil にする
func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// v が nil なら条件を付けない
func whereEq[T any](column string, v *T) scope {
	return func(db *gorm.DB) *gorm.DB {
		if v == nil {
			return db
		}
		return db.Where(column+" = ?", *v)
	}
}

// from <= column <= to（どちらも省略可）
func between(column string, from, to *time.Time) scope {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" <= ?", *to)
		}
		return db
	}
}

func paginate(limit, offset int) scope {
	limit, offset = clampPage(limit, offset)
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(limit).Offset(offset)
	}
}

// limit/offsetの丸め
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// 部分一致用のLIKEパターン。% と _ は文字として扱う（ESCAPE '\' と組み合わせる）
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
