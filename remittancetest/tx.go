package remittancetest

import remittance "github.com/CallMeGwei/b9labs-remittance"

// Tx represents a transaction carrying a single message that is to be
// processed within this transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg remittance.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ remittance.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (remittance.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a mock message. It can route to any path and marshal to any
// payload, as configured.
type Msg struct {
	// RoutePath returned by the Path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ remittance.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
