package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"repoview/internal/pkg/client"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
)

const (
	DefaultAPIURL  = "https://api.github.com"
	DefaultTimeout = 30 * time.Second
)

var ErrInvalidTimeout = errors.New("github api timeout is invalid")

type GithubClient struct {
	rc *resty.Client
}

type ClientOptions struct {
	// APIURL is the API root every request path is relative to.
	APIURL  string
	Timeout time.Duration
}

func New(o *ClientOptions) *GithubClient {
	apiURL := o.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	rc := resty.New().
		SetHostURL(apiURL).
		SetHeader("Accept", "application/vnd.github.v3+json")
	if o.Timeout > 0 {
		rc.SetTimeout(o.Timeout)
	}

	return &GithubClient{rc: rc}
}

type clientConfiguration struct {
	apiURL  string
	timeout time.Duration
}

func getConfiguration(v *viper.Viper) (*clientConfiguration, error) {
	apiURL := DefaultAPIURL
	if u := v.GetString("api.url"); u != "" {
		apiURL = u
	}

	timeout := DefaultTimeout
	if t := v.GetString("api.timeout"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d < 0 {
			return nil, errors.Wrapf(ErrInvalidTimeout, "got %q", t)
		}
		timeout = d
	}

	return &clientConfiguration{
		apiURL:  apiURL,
		timeout: timeout,
	}, nil
}

// NewFromConfig builds a client from the api.* configuration keys.
func NewFromConfig(v *viper.Viper) (*GithubClient, error) {
	config, err := getConfiguration(v)
	if err != nil {
		return nil, err
	}

	return New(&ClientOptions{
		APIURL:  config.apiURL,
		Timeout: config.timeout,
	}), nil
}

type githubError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}

func (c *GithubClient) get(
	ctx context.Context,
	path string,
	query map[string]string,
) (*resty.Response, error) {
	r, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", path)
	}

	log.Debug().
		Str("path", path).
		Interface("query", query).
		Int("status", r.StatusCode()).
		Dur("took", r.Time()).
		Msg("github request")

	if r.IsError() {
		return nil, parseError(r)
	}

	return r, nil
}

func parseError(r *resty.Response) error {
	apiErr := &client.APIError{StatusCode: r.StatusCode()}

	ghErr := &githubError{}
	if err := json.Unmarshal(r.Body(), ghErr); err == nil {
		apiErr.Message = ghErr.Message
		apiErr.DocumentationURL = ghErr.DocumentationURL
	}

	return apiErr
}

func (c *GithubClient) GetRepository(
	ctx context.Context,
	name string,
) (*client.Repository, error) {
	r, err := c.get(ctx, fmt.Sprintf("/repos/%s", name), nil)
	if err != nil {
		return nil, err
	}

	repo := &repository{}
	err = json.Unmarshal(r.Body(), repo)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse repository")
	}

	return &client.Repository{
		Name:        repo.Name,
		FullName:    repo.FullName,
		Description: repo.Description,
		URL:         repo.HTMLURL,
		Owner: client.User{
			Login:     repo.Owner.Login,
			AvatarURL: repo.Owner.AvatarURL,
		},
	}, nil
}

func issuesQuery(o *client.GetIssuesOptions) map[string]string {
	query := map[string]string{
		"state": string(o.State),
	}
	if o.PerPage > 0 {
		query["per_page"] = strconv.Itoa(o.PerPage)
	}
	if o.Page > 0 {
		query["page"] = strconv.Itoa(o.Page)
	}

	return query
}

func (c *GithubClient) GetIssues(
	ctx context.Context,
	o *client.GetIssuesOptions,
) ([]*client.Issue, error) {
	r, err := c.get(
		ctx,
		fmt.Sprintf("/repos/%s/issues", o.Repository),
		issuesQuery(o),
	)
	if err != nil {
		return nil, err
	}

	return parseIssues(r.Body())
}

var ErrUnexpectedPayload = errors.New("unexpected issues payload, expected a list")

func parseIssues(body []byte) ([]*client.Issue, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrUnexpectedPayload
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, ErrUnexpectedPayload
	}

	issues := []*client.Issue{}
	parsed.ForEach(func(key, value gjson.Result) bool {
		issue := &client.Issue{
			ID:     value.Get("id").String(),
			Number: value.Get("number").Int(),
			Title:  value.Get("title").String(),
			URL:    value.Get("html_url").String(),
			State:  value.Get("state").String(),
			User: client.User{
				Login:     value.Get("user.login").String(),
				AvatarURL: value.Get("user.avatar_url").String(),
			},
			Labels: []*client.Label{},
		}

		value.Get("labels").ForEach(func(_, label gjson.Result) bool {
			issue.Labels = append(issue.Labels, &client.Label{
				ID:    label.Get("id").String(),
				Name:  label.Get("name").String(),
				Color: label.Get("color").String(),
			})

			return true
		})

		issues = append(issues, issue)
		return true
	})

	return issues, nil
}
