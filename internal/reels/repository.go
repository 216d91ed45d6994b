package reels

import (
	"context"
	"database/sql"
	"time"
)

type Repository interface {
	CreateReel(ctx context.Context, reel *Reel) error
	GetReel(ctx context.Context, id string) (*Reel, error)
	ListReels(ctx context.Context, limit int) ([]*Reel, error)
	ListPendingReels(ctx context.Context) ([]*Reel, error)
	ClaimReel(ctx context.Context, id string) (bool, error)
	UpdateReelStatus(ctx context.Context, id, status string) error
	MarkReelFailed(ctx context.Context, id, errorMsg, errorKind string) error
	SetReelArtifacts(ctx context.Context, id, audioPath, captionPath, videoPath string, durationSeconds float64) error
	CountReels(ctx context.Context) (int, error)
	CountReelsByStatus(ctx context.Context, status string) (int, error)

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const reelColumns = `id, title, locator, body, voice_selector, background_selector,
	max_duration_s, status, error, error_kind, audio_path, caption_path,
	video_path, duration_s, created_at, updated_at`

func (r *SQLiteRepository) CreateReel(ctx context.Context, reel *Reel) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reels (id, title, locator, body, voice_selector, background_selector,
			max_duration_s, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, reel.ID, reel.Title, reel.Locator, reel.Body, reel.VoiceSelector, reel.BackgroundSelector,
		reel.MaxDurationSeconds, reel.Status,
		reel.CreatedAt.Format(time.RFC3339), reel.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetReel(ctx context.Context, id string) (*Reel, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reelColumns+` FROM reels WHERE id = ?`, id)
	return scanReel(row)
}

func (r *SQLiteRepository) ListReels(ctx context.Context, limit int) ([]*Reel, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reelColumns+` FROM reels ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReels(rows)
}

func (r *SQLiteRepository) ListPendingReels(ctx context.Context) ([]*Reel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reelColumns+` FROM reels WHERE status = 'pending' ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReels(rows)
}

// ClaimReel atomically takes a pending reel for processing. It reports false
// when another worker got there first. The claim status is neutral; stage
// statuses are written only as the pipeline actually reaches them.
func (r *SQLiteRepository) ClaimReel(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reels SET status = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'
	`, StatusRunning, time.Now().Format(time.RFC3339), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *SQLiteRepository) UpdateReelStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reels SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *SQLiteRepository) MarkReelFailed(ctx context.Context, id, errorMsg, errorKind string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reels SET status = 'failed', error = ?, error_kind = ?, updated_at = ? WHERE id = ?
	`, errorMsg, errorKind, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *SQLiteRepository) SetReelArtifacts(ctx context.Context, id, audioPath, captionPath, videoPath string, durationSeconds float64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reels SET audio_path = ?, caption_path = ?, video_path = ?, duration_s = ?, updated_at = ?
		WHERE id = ?
	`, audioPath, captionPath, videoPath, durationSeconds, time.Now().Format(time.RFC3339), id)
	return err
}

func (r *SQLiteRepository) CountReels(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reels").Scan(&count)
	return count, err
}

func (r *SQLiteRepository) CountReelsByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reels WHERE status = ?", status).Scan(&count)
	return count, err
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReelFields(row rowScanner) (*Reel, error) {
	var reel Reel
	var errMsg, errKind, audioPath, captionPath, videoPath sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&reel.ID, &reel.Title, &reel.Locator, &reel.Body,
		&reel.VoiceSelector, &reel.BackgroundSelector, &reel.MaxDurationSeconds,
		&reel.Status, &errMsg, &errKind, &audioPath, &captionPath, &videoPath,
		&reel.DurationSeconds, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	reel.Error = errMsg.String
	reel.ErrorKind = errKind.String
	reel.AudioPath = audioPath.String
	reel.CaptionPath = captionPath.String
	reel.VideoPath = videoPath.String
	reel.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	reel.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &reel, nil
}

func scanReel(row *sql.Row) (*Reel, error) {
	reel, err := scanReelFields(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return reel, err
}

func scanReels(rows *sql.Rows) ([]*Reel, error) {
	var out []*Reel
	for rows.Next() {
		reel, err := scanReelFields(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reel)
	}
	return out, rows.Err()
}
