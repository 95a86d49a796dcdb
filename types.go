package remittance

import (
	"encoding/json"
	"reflect"

	"github.com/CallMeGwei/b9labs-remittance/errors"
)

// Msg is a request for the ledger to take an action (make a state
// transition). It is just the request and must be validated by the handlers.
// All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the routing path of the message. It is used by the
	// router to locate the proper handler. Must be alphanumeric,
	// underscore and slash only.
	Path() string

	// Validate makes sure the basic rules are enforced upon input data.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as Unmarshal almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represents the data sent from the user to the ledger. It includes the
// actual message, along with anything else needed to pass through the
// decorator stack.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// LoadMsg extracts the message from the transaction, validates it and loads
// it into the destination. Destination must be a pointer to the expected
// message type. A transaction carrying a message of a different type is
// rejected with ErrType.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	if !reflect.TypeOf(msg).AssignableTo(reflect.TypeOf(destination)) {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	reflect.ValueOf(destination).Elem().Set(reflect.ValueOf(msg).Elem())
	return nil
}

// Handler is a core engine that can process a few specific messages.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication, pause gating, or savepoints, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// router.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult captures the results of a dry-run of a transaction.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human readable data for debugging.
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform.
	GasAllocated int64
}

// DeliverResult captures any non-error execution result to make sure people
// use error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human readable data for debugging.
	Log string
	// Tags are emitted at the point of the state transition and describe
	// it for observers. They are never batched or deferred.
	Tags []KVPair
	// GasUsed is the units of work performed.
	GasUsed int64
}

// KVPair is a single event tag attached to a DeliverResult.
type KVPair struct {
	Key   []byte
	Value []byte
}

// Pair is a helper to build an event tag.
func Pair(key, value string) KVPair {
	return KVPair{Key: []byte(key), Value: []byte(value)}
}

// Options are the initialization options. Each extension can look up its key
// and parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the json
// into the given obj. Returns an error if it cannot parse. Noop and no error
// if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "options %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize extensions from
// genesis-like option contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
