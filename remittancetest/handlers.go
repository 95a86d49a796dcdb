package remittancetest

import remittance "github.com/CallMeGwei/b9labs-remittance"

// Handler is a mock implementation of the remittance.Handler interface.
// Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult remittance.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult remittance.DeliverResult
	DeliverErr    error
}

var _ remittance.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
