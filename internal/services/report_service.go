// internal/services/report_service.go
package services

import (
	"sort"

	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/store"
)

type ReportService struct {
	store store.Store
}

type DashboardStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Revoked  int `json:"revoked"`
}

type DataTypeCount struct {
	DataType string `json:"data_type"`
	Count    int    `json:"count"`
}

type ActivityEntry struct {
	ConsentID   string            `json:"consent_id"`
	DataUser    string            `json:"data_user"`
	DataOwner   string            `json:"data_owner"`
	Action      models.ActionKind `json:"action"`
	PerformedBy models.Performer  `json:"performed_by"`
	Reason      string            `json:"reason,omitempty"`
	Timestamp   string            `json:"timestamp"`
}

type ConsentReport struct {
	Stats          DashboardStats  `json:"stats"`
	ByDataType     []DataTypeCount `json:"by_data_type"`
	RecentActivity []ActivityEntry `json:"recent_activity"`
}

func NewReportService(st store.Store) *ReportService {
	return &ReportService{store: st}
}

// Dashboard aggregates the lifecycle counts shown on the landing
// screen. A revoked record counts as revoked, not approved, even though
// its status column still reads approved.
func (s *ReportService) Dashboard() (*DashboardStats, error) {
	consents, err := s.store.Consents().List()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Total: len(consents)}
	for i := range consents {
		switch consents[i].EffectiveStatus() {
		case "pending":
			stats.Pending++
		case "approved":
			stats.Approved++
		case "rejected":
			stats.Rejected++
		case "revoked":
			stats.Revoked++
		}
	}
	return stats, nil
}

func (s *ReportService) Report(recentLimit int) (*ConsentReport, error) {
	consents, err := s.store.Consents().List()
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{Total: len(consents)}
	byType := make(map[string]int)
	var activity []ActivityEntry

	for i := range consents {
		rec := &consents[i]
		switch rec.EffectiveStatus() {
		case "pending":
			stats.Pending++
		case "approved":
			stats.Approved++
		case "rejected":
			stats.Rejected++
		case "revoked":
			stats.Revoked++
		}
		for _, dt := range rec.DataTypes {
			byType[dt]++
		}
		for _, action := range rec.ActionHistory {
			activity = append(activity, ActivityEntry{
				ConsentID:   rec.ID.String(),
				DataUser:    rec.DataUser,
				DataOwner:   rec.DataOwner,
				Action:      action.Action,
				PerformedBy: action.PerformedBy,
				Reason:      action.Reason,
				Timestamp:   action.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
	}

	counts := make([]DataTypeCount, 0, len(byType))
	for dt, n := range byType {
		counts = append(counts, DataTypeCount{DataType: dt, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].DataType < counts[j].DataType
	})

	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Timestamp > activity[j].Timestamp
	})
	if recentLimit > 0 && len(activity) > recentLimit {
		activity = activity[:recentLimit]
	}

	return &ConsentReport{
		Stats:          stats,
		ByDataType:     counts,
		RecentActivity: activity,
	}, nil
}
