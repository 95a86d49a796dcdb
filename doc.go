/*
Package remittance defines the common interfaces and primitive types that
tie the escrow ledger together: messages, transactions, handlers and
decorators, the key-value store contracts, and the address/time primitives
shared by every extension.

The packages in this repository form a small transaction-processing core in
the spirit of a blockchain application framework. A transaction carries
exactly one message. Messages are routed to handlers through a decorator
chain (see the app package). The platform executing transactions is expected
to serialize them: one Deliver completes fully before the next begins, which
is why no package here takes any locks.

Extensions live under x/. The escrow ledger itself is x/escrow, value
custody and transfer is x/cash.
*/
package remittance
