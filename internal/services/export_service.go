// internal/services/export_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/DBN92/solve-it-neat/internal/config"
	"github.com/DBN92/solve-it-neat/internal/metrics"
	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/store"
)

// ExportService produces portable snapshots of the consent ledger, for
// LGPD data-portability requests and for moving data between
// deployments. Snapshots can be returned inline or archived to S3.
type ExportService struct {
	store    store.Store
	s3Client *s3.S3
	cfg      *config.Config
}

type ExportSnapshot struct {
	ExportedAt time.Time               `json:"exported_at"`
	Consents   []models.ConsentRequest `json:"consents"`
	Applicants []models.Applicant      `json:"applicants"`
	Users      []models.UserResponse   `json:"users"`
}

type ExportResult struct {
	Snapshot *ExportSnapshot `json:"snapshot,omitempty"`
	S3Key    string          `json:"s3_key,omitempty"`
	Size     int             `json:"size"`
}

type ImportRequest struct {
	Consents   []models.ConsentRequest `json:"consents"`
	Applicants []models.Applicant      `json:"applicants"`
}

type ImportResult struct {
	ConsentsImported   int `json:"consents_imported"`
	ApplicantsImported int `json:"applicants_imported"`
	Skipped            int `json:"skipped"`
}

func NewExportService(st store.Store, cfg *config.Config) (*ExportService, error) {
	svc := &ExportService{store: st, cfg: cfg}

	if cfg.AWS.AccessKeyID == "" {
		// No credentials configured; exports stay inline.
		return svc, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	svc.s3Client = s3.New(sess)
	return svc, nil
}

func (s *ExportService) snapshot() (*ExportSnapshot, error) {
	consents, err := s.store.Consents().List()
	if err != nil {
		return nil, err
	}
	applicants, err := s.store.Applicants().List()
	if err != nil {
		return nil, err
	}
	users, err := s.store.Users().List()
	if err != nil {
		return nil, err
	}

	return &ExportSnapshot{
		ExportedAt: time.Now().UTC(),
		Consents:   consents,
		Applicants: applicants,
		Users:      models.FormatUsers(users),
	}, nil
}

// Export builds a full snapshot. With archive set and S3 configured,
// the snapshot is written to the configured bucket and only the key is
// returned; otherwise the snapshot comes back inline.
func (s *ExportService) Export(archive bool) (*ExportResult, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to build export snapshot: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export snapshot: %w", err)
	}

	if archive && s.s3Client != nil {
		key := fmt.Sprintf("exports/consents-%s.json", snap.ExportedAt.Format("20060102-150405"))
		_, err := s.s3Client.PutObject(&s3.PutObjectInput{
			Bucket:        aws.String(s.cfg.AWS.S3Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentType:   aws.String("application/json"),
			ContentLength: aws.Int64(int64(len(data))),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload export to S3: %w", err)
		}

		metrics.ExportsCompleted.WithLabelValues("s3").Inc()
		logrus.WithFields(logrus.Fields{
			"key":  key,
			"size": len(data),
		}).Info("Export archived to S3")

		return &ExportResult{S3Key: key, Size: len(data)}, nil
	}

	metrics.ExportsCompleted.WithLabelValues("inline").Inc()
	return &ExportResult{Snapshot: snap, Size: len(data)}, nil
}

// Import loads records from a snapshot. Records whose ID already exists
// are skipped, so re-importing the same file is harmless. The audit
// trail travels with each consent and is written as-is.
func (s *ExportService) Import(req *ImportRequest) (*ImportResult, error) {
	result := &ImportResult{}

	for i := range req.Consents {
		rec := req.Consents[i]
		if _, err := s.store.Consents().GetByID(rec.ID); err == nil {
			result.Skipped++
			continue
		}
		// History rows arrive inside the record; no new action is
		// appended on import.
		history := rec.ActionHistory
		rec.ActionHistory = nil
		if err := s.store.Consents().Create(&rec, nil); err != nil {
			return nil, fmt.Errorf("failed to import consent %s: %w", rec.ID, err)
		}
		for j := range history {
			action := history[j]
			if err := s.store.Consents().Update(&rec, &action); err != nil {
				return nil, fmt.Errorf("failed to import history for consent %s: %w", rec.ID, err)
			}
		}
		result.ConsentsImported++
	}

	for i := range req.Applicants {
		ap := req.Applicants[i]
		if _, err := s.store.Applicants().GetByID(ap.ID); err == nil {
			result.Skipped++
			continue
		}
		if err := s.store.Applicants().Create(&ap); err != nil {
			return nil, fmt.Errorf("failed to import applicant %s: %w", ap.ID, err)
		}
		result.ApplicantsImported++
	}

	logrus.WithFields(logrus.Fields{
		"consents":   result.ConsentsImported,
		"applicants": result.ApplicantsImported,
		"skipped":    result.Skipped,
	}).Info("Import completed")

	return result, nil
}
