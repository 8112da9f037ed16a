// Package gen produces fake signed init data strings for development and
// load testing, the counterpart of pointing a real Mini App at a bot. Every
// line it emits validates under the configured token.
package gen

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/initguard/initguard/pkg/initdata"
)

// Config controls a generation run.
type Config struct {
	Token string
	Count int
	Seed  int64 // deterministic output if non-zero
}

var chatTypes = []string{"sender", "private", "group", "supergroup", "channel"}

// Generate writes Count signed init data strings to w, one per line.
func Generate(w io.Writer, cfg Config) error {
	if cfg.Count <= 0 {
		cfg.Count = 1
	}
	gofakeit.Seed(cfg.Seed)

	for i := 0; i < cfg.Count; i++ {
		fields, err := fakeFields()
		if err != nil {
			return err
		}
		signed, err := initdata.Sign(fields, cfg.Token, time.Now())
		if err != nil {
			return fmt.Errorf("sign generated data: %w", err)
		}
		if _, err := fmt.Fprintln(w, signed); err != nil {
			return fmt.Errorf("write generated data: %w", err)
		}
	}
	return nil
}

func fakeFields() (map[string]string, error) {
	user := initdata.User{
		ID:           int64(gofakeit.Number(100000, 999999999)),
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		Username:     gofakeit.Username(),
		LanguageCode: gofakeit.LanguageAbbreviation(),
		IsPremium:    gofakeit.Bool(),
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("marshal fake user: %w", err)
	}

	fields := map[string]string{
		"query_id":      uuid.NewString(),
		"user":          string(userJSON),
		"chat_type":     chatTypes[gofakeit.Number(0, len(chatTypes)-1)],
		"chat_instance": fmt.Sprintf("%d", gofakeit.Number(1000000000, 2000000000)),
	}
	if gofakeit.Bool() {
		fields["start_param"] = gofakeit.Word()
	}
	return fields, nil
}
