package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// ActiveAlert é o snapshot de um alerta pronto para checagem: já vem com a
// URL e o título do produto vigiado.
type ActiveAlert struct {
	AlertID     int64
	ChatID      int64
	TargetPrice decimal.Decimal
	ProductID   string
	URL         string
	Title       string
}

type AlertRepository struct {
	DB *sql.DB
}

func (r *AlertRepository) Create(ctx context.Context, productID string, chatID int64, target decimal.Decimal) (int64, error) {
	var alertID int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO price_alerts (product_id, chat_id, target_price)
		VALUES ($1, $2, $3)
		RETURNING alert_id
	`, productID, chatID, target.String()).Scan(&alertID)
	return alertID, err
}

// ActiveAlerts devolve o snapshot consistente que um ciclo do watchdog
// percorre. Alertas criados durante o ciclo ficam para o próximo.
func (r *AlertRepository) ActiveAlerts(ctx context.Context) ([]ActiveAlert, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT pa.alert_id, pa.chat_id, pa.target_price::text, pa.product_id, p.url, p.title
		FROM price_alerts pa
		JOIN products p ON pa.product_id = p.product_id
		WHERE pa.is_active = TRUE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []ActiveAlert
	for rows.Next() {
		var a ActiveAlert
		var target string
		if err := rows.Scan(&a.AlertID, &a.ChatID, &target, &a.ProductID, &a.URL, &a.Title); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(target)
		if err != nil {
			continue
		}
		a.TargetPrice = d
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *AlertRepository) Deactivate(ctx context.Context, alertID int64) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE price_alerts SET is_active = FALSE WHERE alert_id = $1`, alertID)
	return err
}
