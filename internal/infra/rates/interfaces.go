package rates

import "context"

type ClientInterface interface {
	Latest(ctx context.Context, target string) (*Rate, error)
}

var _ ClientInterface = (*Client)(nil)
