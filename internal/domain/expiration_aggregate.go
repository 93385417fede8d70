package domain

type StatusBuckets struct {
	Active  int
	Warning int
	Expired int
	Unknown int
}

func (b StatusBuckets) Total() int {
	return b.Active + b.Warning + b.Expired + b.Unknown
}

func (b *StatusBuckets) add(status ExpirationStatus) {
	switch status {
	case StatusActive:
		b.Active++
	case StatusWarning:
		b.Warning++
	case StatusExpired:
		b.Expired++
	default:
		b.Unknown++
	}
}

// CountExpired counts accounts whose entitlement has lapsed. Accounts that cannot be evaluated
// are never counted.
func CountExpired(accounts []Account, catalog PlanCatalog, opts EvaluateOptions) int {
	opts = opts.resolve()

	count := 0
	for _, account := range accounts {
		if EvaluateAccount(account, catalog, opts).IsExpired {
			count++
		}
	}

	return count
}

// FilterExpired returns the expired accounts in input order.
func FilterExpired(accounts []Account, catalog PlanCatalog, opts EvaluateOptions) []Account {
	opts = opts.resolve()

	expired := make([]Account, 0)
	for _, account := range accounts {
		if EvaluateAccount(account, catalog, opts).IsExpired {
			expired = append(expired, account)
		}
	}

	return expired
}

func BucketByStatus(accounts []Account, catalog PlanCatalog, opts EvaluateOptions) StatusBuckets {
	opts = opts.resolve()

	var buckets StatusBuckets
	for _, account := range accounts {
		buckets.add(EvaluateAccount(account, catalog, opts).Status)
	}

	return buckets
}
