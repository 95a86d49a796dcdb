package remittance

import (
	"context"
	"time"
)

// Context is just a type alias for the standard implementation. We use this
// type throughout to allow simpler extension of the context without pulling
// the whole framework into every extension.
type Context = context.Context

type contextKey int // local to the remittance module

const (
	contextKeyHeight contextKey = iota
	contextKeyTime
)

// WithHeight sets the block height for the Context. Must only be done once
// per block.
func WithHeight(ctx Context, height int64) Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height. ok is false if no height is
// set yet.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time for the Context. The time is rounded
// down to seconds precision, matching what UnixTime can represent.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t.Round(time.Second))
}

// BlockTime returns the block time as declared for the currently processed
// block. ok is false if no time is set.
func BlockTime(ctx Context) (time.Time, bool) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	return val, ok
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the block. Expiration is inclusive, meaning that if
// current time is equal to the expiration time then this function returns
// true.
//
// This function panics if the block time is not provided in the context.
// This must never happen. The panic is here to prevent a broken setup from
// processing data incorrectly.
func IsExpired(ctx Context, t UnixTime) bool {
	blockNow, ok := BlockTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	return t <= AsUnixTime(blockNow)
}

// InThePast returns true if given time is in the past compared to the
// current time as declared in the context. This function is not inclusive of
// current time: if given time is equal to "now" it returns false.
func InThePast(ctx Context, t time.Time) bool {
	now, ok := BlockTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	return t.Before(now)
}

// InTheFuture returns true if given time is in the future compared to the
// current time as declared in the context. This function is not inclusive of
// current time: if given time is equal to "now" it returns false.
func InTheFuture(ctx Context, t time.Time) bool {
	now, ok := BlockTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	return t.After(now)
}
