package escrow

import (
	"context"
	"testing"
	"time"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/remittancetest/assert"
)

const oneHour = time.Hour

func TestRedemptionWindow(t *testing.T) {
	e := &Escrow{
		RedeemableFrom: 1000,
		ExpiresAt:      2000,
	}

	cases := map[string]struct {
		now            remittance.UnixTime
		wantRedeemable bool
		wantExpired    bool
	}{
		"before the window": {
			now: 999,
		},
		"at the redeemable time": {
			now:            1000,
			wantRedeemable: true,
		},
		"inside the window": {
			now:            1500,
			wantRedeemable: true,
		},
		"one second before expiry": {
			now:            1999,
			wantRedeemable: true,
		},
		"at expiry": {
			now:         2000,
			wantExpired: true,
		},
		"after expiry": {
			now:         3000,
			wantExpired: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := remittance.WithBlockTime(context.Background(), tc.now.Time())
			assert.Equal(t, tc.wantRedeemable, isRedeemable(ctx, e))
			assert.Equal(t, tc.wantExpired, isExpired(ctx, e))
		})
	}
}

func TestValidateWindow(t *testing.T) {
	now := remittance.AsUnixTime(time.Now())
	conf := Configuration{
		MaxFutureOffset: remittance.AsUnixDuration(24 * oneHour),
		MaxExpiryOffset: remittance.AsUnixDuration(72 * oneHour),
	}

	cases := map[string]struct {
		redeemableFrom remittance.UnixTime
		expiresAt      remittance.UnixTime
		wantErr        *errors.Error
	}{
		"valid window": {
			redeemableFrom: now.Add(oneHour),
			expiresAt:      now.Add(48 * oneHour),
		},
		"expiry equals redeemable time": {
			redeemableFrom: now.Add(oneHour),
			expiresAt:      now.Add(oneHour),
			wantErr:        ErrInvalidWindow,
		},
		"minimal window": {
			redeemableFrom: now.Add(oneHour) - 1,
			expiresAt:      now.Add(oneHour),
		},
		"expiry in the past": {
			redeemableFrom: now.Add(-2 * oneHour),
			expiresAt:      now.Add(-oneHour),
			wantErr:        ErrInvalidWindow,
		},
		"expiry right now": {
			redeemableFrom: now - 100,
			expiresAt:      now,
			wantErr:        ErrInvalidWindow,
		},
		"redeemable time too far ahead": {
			redeemableFrom: now.Add(25 * oneHour),
			expiresAt:      now.Add(26 * oneHour),
			wantErr:        ErrInvalidWindow,
		},
		"expiry too far ahead": {
			redeemableFrom: now.Add(oneHour),
			expiresAt:      now.Add(73 * oneHour),
			wantErr:        ErrInvalidWindow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := remittance.WithBlockTime(context.Background(), now.Time())
			err := validateWindow(ctx, conf, tc.redeemableFrom, tc.expiresAt)
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestValidateWindowNoBlockTime(t *testing.T) {
	conf := Configuration{
		MaxFutureOffset: remittance.AsUnixDuration(oneHour),
		MaxExpiryOffset: remittance.AsUnixDuration(oneHour),
	}
	// Missing block time is broken platform wiring, not a caller error.
	assert.Panics(t, func() {
		_ = validateWindow(context.Background(), conf, 1, 2)
	})
}
