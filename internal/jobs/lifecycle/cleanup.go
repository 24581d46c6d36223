package lifecycle

import (
	"fmt"

	"go.uber.org/zap"
)

type CleanupError struct {
	MediaID uint   `json:"media_id"`
	Title   string `json:"title"`
	Error   string `json:"error"`
}

type CleanupReport struct {
	Deleted int            `json:"deleted"`
	Total   int            `json:"total"`
	Errors  []CleanupError `json:"errors,omitempty"`
}

// Cleanup silinme tarihi geçmiş satılmış içerikleri temizler: önce R2'deki
// dosya ve thumbnail (yoksa hata değil), sonra kayıt. Bir öğenin hatası
// diğerlerini durdurmaz; blob silinemezse kayıt yerinde bırakılır ki
// sonraki çalıştırma tekrar denesin.
func (j *Job) Cleanup() (*CleanupReport, error) {
	now := j.now()

	expired, err := j.media.FindSoldExpired(now)
	if err != nil {
		return nil, fmt.Errorf("list expired media: %w", err)
	}

	report := &CleanupReport{Total: len(expired)}

	for _, m := range expired {
		if err := j.storage.DeleteIfExists(m.R2Key); err != nil {
			report.Errors = append(report.Errors, CleanupError{
				MediaID: m.ID, Title: m.Title,
				Error: fmt.Sprintf("delete blob: %v", err),
			})
			j.logger.Warn("failed to delete media blob",
				zap.Uint("media_id", m.ID), zap.Error(err))
			continue
		}
		if err := j.storage.DeleteIfExists(m.ThumbnailKey); err != nil {
			report.Errors = append(report.Errors, CleanupError{
				MediaID: m.ID, Title: m.Title,
				Error: fmt.Sprintf("delete thumbnail: %v", err),
			})
			j.logger.Warn("failed to delete media thumbnail",
				zap.Uint("media_id", m.ID), zap.Error(err))
			continue
		}
		if err := j.media.Delete(m.ID); err != nil {
			report.Errors = append(report.Errors, CleanupError{
				MediaID: m.ID, Title: m.Title,
				Error: fmt.Sprintf("delete record: %v", err),
			})
			j.logger.Warn("failed to delete media record",
				zap.Uint("media_id", m.ID), zap.Error(err))
			continue
		}
		report.Deleted++
	}

	j.logger.Info("expired media cleanup completed",
		zap.Int("deleted", report.Deleted),
		zap.Int("total", report.Total),
		zap.Int("errors", len(report.Errors)))
	return report, nil
}
