package wealthsimple

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
)

// DefaultScope is the OAuth scope requested by Login when none is given.
const DefaultScope = "invest.read invest.write trade.read trade.write tax.read tax.write"

// Client talks to the Wealthsimple private web API: it owns the session
// lifecycle, executes GraphQL queries, and augments the raw records with
// human-readable descriptions.
//
// A Client is not safe for concurrent use; every operation blocks until the
// remote call returns or fails.
type Client struct {
	httpc     *http.Client
	log       zerolog.Logger
	userAgent string
	session   *Session

	// restored is set when the session was supplied by the caller, in which
	// case bootstrap is a pure copy and performs no network call.
	restored *Session

	// accounts are cached per open-only view, invalidated only by an
	// explicit bypass on the next call.
	accountCache map[bool][]Account

	// optional external cache pair for security market data lookups.
	securityCacheGet func(id string) (Security, bool)
	securityCachePut func(id string, sec Security)
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithSession restores a previously persisted session. Bootstrap then copies
// its identifying fields verbatim and performs no network call.
func WithSession(s *Session) Option { return func(c *Client) { c.restored = s } }

// WithUserAgent sets the User-Agent header sent on every call.
func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }

// WithLogger sets the logger used for transport-level debug logging.
// The default logger discards everything.
func WithLogger(log zerolog.Logger) Option { return func(c *Client) { c.log = log } }

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option { return func(c *Client) { c.httpc = httpc } }

// WithSecurityMarketDataCache installs an external get/put pair consulted
// before and after every security market data lookup. The pair is treated as
// an untrusted synchronous collaborator; its thread-safety is the caller's
// concern.
func WithSecurityMarketDataCache(get func(id string) (Security, bool), put func(id string, sec Security)) Option {
	return func(c *Client) {
		c.securityCacheGet = get
		c.securityCachePut = put
	}
}

// New creates a client and bootstraps its session. Without WithSession this
// scrapes the provider's login page and application script for the device
// and client identifiers; with it, the restored identifiers are copied and
// no network call is made.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		httpc:        http.DefaultClient,
		log:          zerolog.Nop(),
		session:      new(Session),
		accountCache: make(map[bool][]Account),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.bootstrap(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromToken creates a client from a restored session and verifies that its
// tokens are still usable, refreshing them if needed. The persister, if any,
// receives the serialized session whenever the tokens change.
func FromToken(sess *Session, persist *Persist, opts ...Option) (*Client, error) {
	c, err := New(append([]Option{WithSession(sess)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := c.EnsureValidToken(persist, ""); err != nil {
		return nil, err
	}
	return c, nil
}

// Session returns the current session, for callers that persist it
// themselves.
func (c *Client) Session() *Session { return c.session }

// GetAccounts returns the identity's accounts, each augmented with the
// computed "description" and "number" fields. With openOnly only accounts
// whose status is "open" are returned. Listings are cached per view; pass
// useCache=false to bypass and repopulate the cache.
func (c *Client) GetAccounts(openOnly, useCache bool) ([]Account, error) {
	if useCache {
		if cached, ok := c.accountCache[openOnly]; ok {
			return cached, nil
		}
	}

	info, err := c.GetTokenInfo()
	if err != nil {
		return nil, err
	}

	var filter func(map[string]any) bool
	if openOnly {
		filter = func(account map[string]any) bool { return str(account, "status") == "open" }
	}

	result, err := c.execute("FetchAllAccountFinancials",
		map[string]any{
			"pageSize":   25,
			"identityId": info["identity_canonical_id"],
		},
		"identity.accounts.edges", expectSequence,
		queryOptions{filter: filter, loadAllPages: true},
	)
	if err != nil {
		return nil, err
	}

	raw := result.([]any)
	accounts := make([]Account, 0, len(raw))
	for _, r := range raw {
		accounts = append(accounts, DescribeAccount(r.(map[string]any)))
	}
	c.accountCache[openOnly] = accounts
	return accounts, nil
}

// GetAccountBalances returns the balances of one account, keyed by security
// id ("sec-c-cad" style ids, plus the special cash entries), with the raw
// quantity as value.
func (c *Client) GetAccountBalances(accountID string) (map[string]any, error) {
	result, err := c.execute("FetchAccountsWithBalance",
		map[string]any{
			"type": "TRADING",
			"ids":  []string{accountID},
		},
		"accounts", expectSequence, queryOptions{},
	)
	if err != nil {
		return nil, err
	}

	accounts := result.([]any)
	if len(accounts) == 0 {
		return nil, &APIError{Msg: fmt.Sprintf("no balances returned for account %s", accountID)}
	}

	// One jsonpath walk flattens custodian accounts and their balance lists.
	entries, err := jsonpath.Get("$.custodianAccounts[*].financials.balance[*]", accounts[0])
	if err != nil {
		return nil, &APIError{Msg: fmt.Sprintf("unexpected balance shape for account %s: %v", accountID, err)}
	}

	balances := make(map[string]any)
	for _, e := range entries.([]any) {
		balance, ok := e.(map[string]any)
		if !ok {
			continue
		}
		balances[str(balance, "securityId")] = balance["quantity"]
	}
	return balances, nil
}

// ActivitiesOptions tunes GetActivities. The zero value (or nil) asks for
// the 50 most recent activities, rejected ones filtered out.
type ActivitiesOptions struct {
	HowMany  int    // page size, default 50
	OrderBy  string // default OCCURRED_AT_DESC
	All      bool   // follow pagination cursors to the end
	Rejected bool   // keep activities with status "rejected"
}

// GetActivities returns the activity feed of one account, most recent first,
// each augmented with the computed "description" field.
func (c *Client) GetActivities(accountID string, opts *ActivitiesOptions) ([]Activity, error) {
	if opts == nil {
		opts = &ActivitiesOptions{}
	}
	howMany := opts.HowMany
	if howMany == 0 {
		howMany = 50
	}
	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = "OCCURRED_AT_DESC"
	}

	var filter func(map[string]any) bool
	if !opts.Rejected {
		filter = func(activity map[string]any) bool { return str(activity, "status") != "rejected" }
	}

	// The feed needs an end date; use the end of the current day.
	endDate := time.Now().Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)

	result, err := c.execute("FetchActivityFeedItems",
		map[string]any{
			"orderBy": orderBy,
			"first":   howMany,
			"condition": map[string]any{
				"endDate":    endDate.UTC().Format("2006-01-02T15:04:05.000000Z"),
				"accountIds": []string{accountID},
			},
		},
		"activityFeedItems.edges", expectSequence,
		queryOptions{filter: filter, loadAllPages: opts.All},
	)
	if err != nil {
		return nil, err
	}

	raw := result.([]any)
	activities := make([]Activity, 0, len(raw))
	for _, r := range raw {
		described, err := DescribeActivity(r.(map[string]any), c)
		if err != nil {
			return nil, err
		}
		activities = append(activities, described)
	}
	return activities, nil
}

// GetSecurityMarketData returns quotes, fundamentals and stock information
// for one security. The external cache pair, when installed, intercepts the
// lookup.
func (c *Client) GetSecurityMarketData(securityID string) (Security, error) {
	if c.securityCacheGet != nil {
		if sec, ok := c.securityCacheGet(securityID); ok {
			return sec, nil
		}
	}

	result, err := c.execute("FetchSecurityMarketData",
		map[string]any{"id": securityID},
		"security", expectMapping, queryOptions{},
	)
	if err != nil {
		return nil, err
	}

	sec := result.(map[string]any)
	if c.securityCachePut != nil {
		c.securityCachePut(securityID, sec)
	}
	return sec, nil
}

// SearchSecurity returns the securities matching a symbol or name query.
func (c *Client) SearchSecurity(query string) ([]Security, error) {
	result, err := c.execute("FetchSecuritySearchResult",
		map[string]any{"query": query},
		"securitySearch.results", expectSequence, queryOptions{},
	)
	if err != nil {
		return nil, err
	}
	raw := result.([]any)
	securities := make([]Security, 0, len(raw))
	for _, r := range raw {
		securities = append(securities, r.(map[string]any))
	}
	return securities, nil
}

// GetSecurityHistoricalQuotes returns the historical quotes of a security
// over a time range ("1d", "1m", "1y"...). Default is one month.
func (c *Client) GetSecurityHistoricalQuotes(securityID, timeRange string) ([]map[string]any, error) {
	if timeRange == "" {
		timeRange = "1m"
	}
	result, err := c.execute("FetchSecurityHistoricalQuotes",
		map[string]any{"id": securityID, "timerange": timeRange},
		"security.historicalQuotes", expectSequence, queryOptions{},
	)
	if err != nil {
		return nil, err
	}
	raw := result.([]any)
	quotes := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		quotes = append(quotes, r.(map[string]any))
	}
	return quotes, nil
}

// SecurityIDToSymbol resolves a security id to its display symbol, in the
// "EXCHANGE:SYMBOL" form shown by the provider.
func (c *Client) SecurityIDToSymbol(securityID string) (string, error) {
	sec, err := c.GetSecurityMarketData(securityID)
	if err != nil {
		return "", err
	}
	stock, ok := sec["stock"].(map[string]any)
	if !ok {
		return "", &APIError{Msg: fmt.Sprintf("security %s has no stock information", securityID), Response: sec}
	}
	return str(stock, "primaryExchange") + ":" + str(stock, "symbol"), nil
}

// GetCorporateActionChildActivities returns the entitlement activities
// attached to a corporate action, such as the HOLD and RECEIVE legs of a
// subdivision.
func (c *Client) GetCorporateActionChildActivities(canonicalID string) ([]Activity, error) {
	result, err := c.execute("FetchCorporateActionEntitlements",
		map[string]any{"parentCanonicalId": canonicalID},
		"corporateAction.entitlements", expectSequence, queryOptions{},
	)
	if err != nil {
		return nil, err
	}
	raw := result.([]any)
	children := make([]Activity, 0, len(raw))
	for _, r := range raw {
		children = append(children, r.(map[string]any))
	}
	return children, nil
}

// GetETFDetails returns the funds-transfer record behind an EFT activity.
func (c *Client) GetETFDetails(fundingID string) (Transfer, error) {
	result, err := c.execute("FetchFundsTransfer",
		map[string]any{"id": fundingID},
		"fundsTransfer", expectMapping, queryOptions{},
	)
	if err != nil {
		return nil, err
	}
	return result.(map[string]any), nil
}

// GetTransferDetails returns the institutional transfer record behind a
// transfer intent activity.
func (c *Client) GetTransferDetails(transferID string) (Transfer, error) {
	result, err := c.execute("FetchInstitutionalTransfer",
		map[string]any{"id": transferID},
		"accountTransfer", expectMapping, queryOptions{},
	)
	if err != nil {
		return nil, err
	}
	return result.(map[string]any), nil
}
