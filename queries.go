package wealthsimple

// graphqlQueries is the fixed catalog of named query documents sent to the
// provider's GraphQL endpoint. The documents mirror what the web application
// sends, fragments included; the provider rejects queries that stray from
// the shapes it knows.
var graphqlQueries = map[string]string{
	"FetchAllAccountFinancials": `query FetchAllAccountFinancials($identityId: ID!, $startDate: Date, $pageSize: Int = 25, $cursor: String) {
  identity(id: $identityId) {
    id
    ...AllAccountFinancials
    __typename
  }
}

fragment AllAccountFinancials on Identity {
  accounts(filter: {}, first: $pageSize, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
      __typename
    }
    edges {
      cursor
      node {
        ...AccountWithFinancials
        __typename
      }
      __typename
    }
    __typename
  }
  __typename
}

fragment AccountWithFinancials on Account {
  ...AccountWithLink
  ...AccountFinancials
  __typename
}

fragment AccountWithLink on Account {
  ...Account
  linkedAccount {
    ...Account
    __typename
  }
  __typename
}

fragment Account on Account {
  ...AccountCore
  custodianAccounts {
    ...CustodianAccount
    __typename
  }
  __typename
}

fragment AccountCore on Account {
  id
  archivedAt
  branch
  closedAt
  createdAt
  cacheExpiredAt
  currency
  requiredIdentityVerification
  unifiedAccountType
  supportedCurrencies
  nickname
  status
  accountOwnerConfiguration
  accountFeatures {
    ...AccountFeature
    __typename
  }
  accountOwners {
    ...AccountOwner
    __typename
  }
  type
  __typename
}

fragment AccountFeature on AccountFeature {
  name
  enabled
  __typename
}

fragment AccountOwner on AccountOwner {
  accountId
  identityId
  accountNickname
  clientCanonicalId
  accountOpeningAgreementsSigned
  name
  email
  ownershipType
  activeInvitation {
    ...AccountOwnerInvitation
    __typename
  }
  sentInvitations {
    ...AccountOwnerInvitation
    __typename
  }
  __typename
}

fragment AccountOwnerInvitation on AccountOwnerInvitation {
  id
  createdAt
  inviteeName
  inviteeEmail
  inviterName
  inviterEmail
  updatedAt
  sentAt
  status
  __typename
}

fragment CustodianAccount on CustodianAccount {
  id
  branch
  custodian
  status
  updatedAt
  __typename
}

fragment AccountFinancials on Account {
  id
  custodianAccounts {
    id
    branch
    financials {
      current {
        ...CustodianAccountCurrentFinancialValues
        __typename
      }
      __typename
    }
    __typename
  }
  financials {
    currentCombined {
      id
      ...AccountCurrentFinancials
      __typename
    }
    __typename
  }
  __typename
}

fragment CustodianAccountCurrentFinancialValues on CustodianAccountCurrentFinancialValues {
  deposits {
    ...Money
    __typename
  }
  earnings {
    ...Money
    __typename
  }
  netDeposits {
    ...Money
    __typename
  }
  netLiquidationValue {
    ...Money
    __typename
  }
  withdrawals {
    ...Money
    __typename
  }
  __typename
}

fragment Money on Money {
  amount
  cents
  currency
  __typename
}

fragment AccountCurrentFinancials on AccountCurrentFinancials {
  id
  netLiquidationValue {
    ...Money
    __typename
  }
  netDeposits {
    ...Money
    __typename
  }
  simpleReturns(referenceDate: $startDate) {
    ...SimpleReturns
    __typename
  }
  totalDeposits {
    ...Money
    __typename
  }
  totalWithdrawals {
    ...Money
    __typename
  }
  __typename
}

fragment SimpleReturns on SimpleReturns {
  amount {
    ...Money
    __typename
  }
  asOf
  rate
  referenceDate
  __typename
}`,

	"FetchActivityFeedItems": `query FetchActivityFeedItems($first: Int, $cursor: Cursor, $condition: ActivityCondition, $orderBy: [ActivitiesOrderBy!] = OCCURRED_AT_DESC) {
  activityFeedItems(
    first: $first
    after: $cursor
    condition: $condition
    orderBy: $orderBy
  ) {
    edges {
      node {
        ...Activity
        __typename
      }
      __typename
    }
    pageInfo {
      hasNextPage
      endCursor
      __typename
    }
    __typename
  }
}

fragment Activity on ActivityFeedItem {
  accountId
  aftOriginatorName
  aftTransactionCategory
  aftTransactionType
  amount
  amountSign
  assetQuantity
  assetSymbol
  canonicalId
  currency
  eTransferEmail
  eTransferName
  externalCanonicalId
  identityId
  institutionName
  occurredAt
  p2pHandle
  p2pMessage
  spendMerchant
  securityId
  billPayCompanyName
  billPayPayeeNickname
  redactedExternalAccountNumber
  opposingAccountId
  status
  subType
  type
  strikePrice
  contractType
  expiryDate
  chequeNumber
  provisionalCreditAmount
  primaryBlocker
  interestRate
  frequency
  counterAssetSymbol
  rewardProgram
  counterPartyCurrency
  counterPartyCurrencyAmount
  counterPartyName
  fxRate
  fees
  reference
  __typename
}`,

	"FetchSecuritySearchResult": `query FetchSecuritySearchResult($query: String!) {
  securitySearch(input: {query: $query}) {
    results {
      ...SecuritySearchResult
      __typename
    }
    __typename
  }
}

fragment SecuritySearchResult on Security {
  id
  buyable
  status
  stock {
    symbol
    name
    primaryExchange
    __typename
  }
  securityGroups {
    id
    name
    __typename
  }
  quoteV2 {
    ... on EquityQuote {
      marketStatus
      __typename
    }
    __typename
  }
  __typename
}`,

	"FetchSecurityHistoricalQuotes": `query FetchSecurityHistoricalQuotes($id: ID!, $timerange: String! = "1d") {
  security(id: $id) {
    id
    historicalQuotes(timeRange: $timerange) {
      ...HistoricalQuote
      __typename
    }
    __typename
  }
}

fragment HistoricalQuote on HistoricalQuote {
  adjustedPrice
  currency
  date
  securityId
  time
  __typename
}`,

	"FetchAccountsWithBalance": `query FetchAccountsWithBalance($ids: [String!]!, $type: BalanceType!) {
  accounts(ids: $ids) {
    ...AccountWithBalance
    __typename
  }
}

fragment AccountWithBalance on Account {
  id
  custodianAccounts {
    id
    financials {
      ... on CustodianAccountFinancialsSo {
        balance(type: $type) {
          ...Balance
          __typename
        }
        __typename
      }
      __typename
    }
    __typename
  }
  __typename
}

fragment Balance on Balance {
  quantity
  securityId
  __typename
}`,

	"FetchSecurityMarketData": `query FetchSecurityMarketData($id: ID!) {
  security(id: $id) {
    id
    ...SecurityMarketData
    __typename
  }
}

fragment SecurityMarketData on Security {
  id
  allowedOrderSubtypes
  marginRates {
    ...MarginRates
    __typename
  }
  fundamentals {
    avgVolume
    high52Week
    low52Week
    yield
    peRatio
    marketCap
    currency
    description
    __typename
  }
  quote {
    bid
    ask
    open
    high
    low
    volume
    askSize
    bidSize
    last
    lastSize
    quotedAsOf
    quoteDate
    amount
    previousClose
    __typename
  }
  stock {
    primaryExchange
    primaryMic
    name
    symbol
    __typename
  }
  __typename
}

fragment MarginRates on MarginRates {
  clientMarginRate
  __typename
}`,

	"FetchFundsTransfer": `query FetchFundsTransfer($id: ID!) {
  fundsTransfer: funds_transfer(id: $id, include_cancelled: true) {
    id
    status
    cancellable
    rejectReason
    schedule {
      id
      __typename
    }
    source {
      ...BankAccountOwner
      __typename
    }
    destination {
      ...BankAccountOwner
      __typename
    }
    __typename
  }
}

fragment BankAccountOwner on BankAccountOwner {
  bankAccount {
    id
    accountName
    accountNumber
    institutionName
    nickname
    __typename
  }
  __typename
}`,

	"FetchInstitutionalTransfer": `query FetchInstitutionalTransfer($id: ID!) {
  accountTransfer(id: $id) {
    ...AccountTransfer
    __typename
  }
}

fragment AccountTransfer on AccountTransfer {
  id
  state
  documentId
  documentType
  expectedCompletionDate
  timelineExpectation {
    lowerBound
    upperBound
    __typename
  }
  estimatedCompletionMaximum
  estimatedCompletionMinimum
  institutionName
  transferStatus: status
  redactedInstitutionAccountNumber
  expectedValue
  transferType
  cancellable
  clientAccountType
  __typename
}`,

	"FetchCorporateActionEntitlements": `query FetchCorporateActionEntitlements($parentCanonicalId: ID!) {
  corporateAction(id: $parentCanonicalId) {
    id
    entitlements {
      canonicalId
      entitlementType
      quantity
      assetSymbol
      securityId
      occurredAt
      __typename
    }
    __typename
  }
}`,
}
