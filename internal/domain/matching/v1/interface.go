package v1

// Matcher crosses a batch of orders and returns trades plus residual orders.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=matching_mock
type Matcher interface {
	Match(orders []Order) (*Result, error)
}
