// Package execute drives a dispatch.DeliveryConfig against a stream of
// SAX-style events, firing Before/Child/After visitors with the ordering,
// predicate short-circuiting, and cancellation semantics the planner's
// indices were built to support. It is the concrete engine spec.md treats
// as an external collaborator: EventSource is the seam a real bootstrapper
// would plug into; NewXMLEventSource is the reference adapter built on
// encoding/xml.
package execute
