package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dowody/rw-sub000/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BotConfigRepository struct {
	DB *pgxpool.Pool
}

func NewBotConfigRepository(db *pgxpool.Pool) *BotConfigRepository {
	return &BotConfigRepository{DB: db}
}

const botConfigColumns = `configid, userid, name, exchange, api_key, min_withdrawal,
	destination_address, schedule, active, created_at, deleted_at`

func (r *BotConfigRepository) Create(ctx context.Context, c *model.BotConfig) (int64, error) {
	var id int64
	query := `
		INSERT INTO bot_configurations
			(userid, name, exchange, api_key, min_withdrawal, destination_address, schedule, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING configid
	`
	err := r.DB.QueryRow(ctx, query,
		c.UserID, c.Name, c.Exchange, c.APIKey, c.MinWithdrawal,
		c.DestinationAddress, c.Schedule, c.Active, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *BotConfigRepository) GetByID(ctx context.Context, configID int64) (*model.BotConfig, error) {
	var c model.BotConfig
	query := `SELECT ` + botConfigColumns + ` FROM bot_configurations WHERE configid=$1 AND deleted_at IS NULL`
	if err := r.DB.QueryRow(ctx, query, configID).
		Scan(&c.ConfigID, &c.UserID, &c.Name, &c.Exchange, &c.APIKey, &c.MinWithdrawal,
			&c.DestinationAddress, &c.Schedule, &c.Active, &c.CreatedAt, &c.DeletedAt); err != nil {
		return nil, errors.New("bot configuration not found")
	}
	return &c, nil
}

func (r *BotConfigRepository) ListByUser(ctx context.Context, userID int64) ([]model.BotConfig, error) {
	query := `SELECT ` + botConfigColumns + ` FROM bot_configurations WHERE userid=$1 AND deleted_at IS NULL ORDER BY configid`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BotConfig
	for rows.Next() {
		var c model.BotConfig
		if err := rows.Scan(&c.ConfigID, &c.UserID, &c.Name, &c.Exchange, &c.APIKey, &c.MinWithdrawal,
			&c.DestinationAddress, &c.Schedule, &c.Active, &c.CreatedAt, &c.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *BotConfigRepository) Update(ctx context.Context, c *model.BotConfig) error {
	query := `
		UPDATE bot_configurations
		SET name=$1, exchange=$2, api_key=$3, min_withdrawal=$4,
		    destination_address=$5, schedule=$6, active=$7
		WHERE configid=$8 AND userid=$9 AND deleted_at IS NULL
	`
	tag, err := r.DB.Exec(ctx, query,
		c.Name, c.Exchange, c.APIKey, c.MinWithdrawal,
		c.DestinationAddress, c.Schedule, c.Active, c.ConfigID, c.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("bot configuration not found")
	}
	return nil
}

func (r *BotConfigRepository) Delete(ctx context.Context, configID, userID int64) error {
	query := `UPDATE bot_configurations SET deleted_at=$1 WHERE configid=$2 AND userid=$3 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), configID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("bot configuration not found or already deleted")
	}
	return nil
}
