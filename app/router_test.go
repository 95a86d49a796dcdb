package app

import (
	"context"
	"testing"

	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/remittancetest"
	"github.com/stretchr/testify/assert"
)

func TestRouterSuccess(t *testing.T) {
	r := NewRouter()
	h := &remittancetest.Handler{}
	r.Handle("test/good", h)

	tx := &remittancetest.Tx{Msg: &remittancetest.Msg{RoutePath: "test/good"}}

	_, err := r.Check(context.Background(), nil, tx)
	assert.NoError(t, err)
	_, err = r.Deliver(context.Background(), nil, tx)
	assert.NoError(t, err)
	assert.Equal(t, 2, h.CallCount())
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()
	tx := &remittancetest.Tx{Msg: &remittancetest.Msg{RoutePath: "test/missing"}}

	_, err := r.Check(context.Background(), nil, tx)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(context.Background(), nil, tx)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestRouterBrokenTx(t *testing.T) {
	r := NewRouter()
	tx := &remittancetest.Tx{Err: errors.ErrState.New("broken")}

	_, err := r.Check(context.Background(), nil, tx)
	assert.True(t, errors.ErrState.Is(err))
}

func TestRouterInvalidPath(t *testing.T) {
	r := NewRouter()
	assert.Panics(t, func() {
		r.Handle("Bad Path!", &remittancetest.Handler{})
	})
}

func TestRouterDoubleRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle("test/dupe", &remittancetest.Handler{})
	assert.Panics(t, func() {
		r.Handle("test/dupe", &remittancetest.Handler{})
	})
}
