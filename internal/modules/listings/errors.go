package listings

import "errors"

var ErrDuplicateReview = errors.New("user has already reviewed this listing")
