package pg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kopdar-dev/kopdar/shared/config"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConnString(t *testing.T) {
	got := ConnString(config.Pg{Host: "db", Port: 5432, User: "u", Password: "p", Dbname: "kopdar"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=kopdar sslmode=disable", got)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		unique    bool
		retryable bool
	}{
		{"unique violation", &pq.Error{Code: "23505"}, true, true},
		{"wrapped unique violation", fmt.Errorf("insert vote: %w", &pq.Error{Code: "23505"}), true, true},
		{"serialization failure", &pq.Error{Code: "40001"}, false, true},
		{"deadlock", &pq.Error{Code: "40P01"}, false, true},
		{"foreign key violation", &pq.Error{Code: "23503"}, false, false},
		{"not a pq error", errors.New("boom"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}
