package issueview

// PageSize is the number of issues requested per page.
const PageSize = 5

// HasMorePolicy decides whether another page may exist after a page
// holding count items out of pageSize.
type HasMorePolicy func(count, pageSize int) bool

// HeuristicHasMore treats a page with fewer than pageSize items as the
// last one. The API gives no total count, so an exactly full last page
// still allows one more request.
func HeuristicHasMore(count, pageSize int) bool {
	return count >= pageSize
}
