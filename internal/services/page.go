package services

import (
	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

func newPage[T any](items []T, p ranking.Page, total int64) dto.PageResp[T] {
	if items == nil {
		items = []T{}
	}
	return dto.PageResp[T]{
		Items:       items,
		CurrentPage: p.Number,
		TotalPages:  p.TotalPages(total),
		TotalCount:  total,
	}
}
