package constants

// Assessment methods the extractor reports on. The set is closed: patterns
// for each method are compiled into the catalog at build time.
const (
	MethodGarg  = "garg"
	MethodKodak = "kodak"
	MethodRSST  = "rsst"
)

// Methods lists the supported methods in evaluation (and output) order.
var Methods = []string{MethodGarg, MethodKodak, MethodRSST}
