package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jengzang/quiet-spots-go/internal/loader"
	"github.com/jengzang/quiet-spots-go/internal/service"
)

// classify maps a service error to an HTTP status and a user-facing message
func classify(err error) (int, string) {
	var formatErr *loader.DataFormatError
	var decodeErr *loader.DecodeError

	switch {
	case errors.Is(err, service.ErrSpotNotFound):
		return http.StatusNotFound, "スポットが見つかりませんでした。"
	case errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity, "データの形式が正しくありません: " + formatErr.Error()
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity, "データの文字コードを読み取れませんでした: " + decodeErr.Error()
	default:
		zap.L().Error("request failed", zap.Error(err))
		return http.StatusInternalServerError, "データの読み込みに失敗しました。"
	}
}
