package handler

import "time"

// テストから時刻を固定するためのフック
func (h *IncidentHandler) SetNow(now func() time.Time) {
	h.now = now
}
