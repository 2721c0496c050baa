// Package gateway provides a gateway to the GitHub GraphQL API.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/naka-gawa/grass-reporter/internal/domain"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// RequestTimeout bounds every request made to GitHub.
const RequestTimeout = 10 * time.Second

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchCalendar(ctx context.Context, login string) (domain.Calendar, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	graphqlClient *githubv4.Client
	httpClient    *http.Client
	logger        *slog.Logger
}

// contributionCalendarQuery requests every week of the default calendar window.
type contributionCalendarQuery struct {
	User struct {
		Login                   string
		ContributionsCollection struct {
			ContributionCalendar struct {
				Weeks []struct {
					ContributionDays []struct {
						ContributionCount int
						Date              string
					}
				}
			}
		}
	} `graphql:"user(login: $userName)"`
}

// NewGitHubGateway creates a gateway that authenticates with token against the
// GraphQL endpoint. An empty endpoint selects api.github.com.
func NewGitHubGateway(token, endpoint string, logger *slog.Logger) (*GitHubGateway, error) {
	// A zero sleep limit turns secondary rate limits into immediate failures.
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(0, func(cbCtx *github_ratelimit.CallbackContext) {
			attrs := []any{}
			if cbCtx.SleepUntil != nil {
				attrs = append(attrs, "reset_at", cbCtx.SleepUntil.Format(time.RFC3339))
			}
			logger.Warn("GitHub secondary rate limit hit, not waiting", attrs...)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Timeout: RequestTimeout,
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	var client *githubv4.Client
	if endpoint == "" {
		client = githubv4.NewClient(httpClient)
	} else {
		client = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return &GitHubGateway{
		graphqlClient: client,
		httpClient:    httpClient,
		logger:        logger,
	}, nil
}

// FetchCalendar fetches the contribution calendar of login and flattens it
// into a date to count mapping. Days with a missing date or a negative count
// are skipped.
func (g *GitHubGateway) FetchCalendar(ctx context.Context, login string) (domain.Calendar, error) {
	g.logger.Debug("Fetching contribution calendar", "user", login)

	var q contributionCalendarQuery
	variables := map[string]interface{}{"userName": githubv4.String(login)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for contribution calendar: %w", err)
	}
	if q.User.Login == "" {
		return nil, fmt.Errorf("GraphQL response for %q contained no user", login)
	}

	calendar := make(domain.Calendar)
	for _, week := range q.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			if _, err := time.Parse(domain.DateKeyLayout, day.Date); err != nil {
				continue
			}
			if day.ContributionCount < 0 {
				continue
			}
			calendar[day.Date] = day.ContributionCount
		}
	}

	g.logger.Debug("Completed fetching contribution calendar", "user", login, "days", len(calendar))
	return calendar, nil
}
