package notifier

import (
	"fmt"
	"net/http"
	"os"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/referee-stats/internal/region"
)

// statusUpdater is the part of twitter.StatusService the notifier uses
type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier posts the region summary to Twitter
type TwitterNotifier struct {
	statuses statusUpdater
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{statuses: client.Statuses}, nil
}

// Notify posts one status with the summary
func (n *TwitterNotifier) Notify(aggregates []region.Aggregate) error {
	if len(aggregates) == 0 {
		return fmt.Errorf("no regions to publish")
	}

	if _, _, err := n.statuses.Update(FormatSummary(aggregates), nil); err != nil {
		return fmt.Errorf("failed to post status: %w", err)
	}
	return nil
}
