package algorithm

// Signal identifies one of the 19 engagement actions the ranking model
// predicts per post. Each post gets a probability [0,1] for every action;
// the final ranking is a weighted sum of those probabilities.
type Signal string

const (
	Favorite         Signal = "favorite_score"
	Reply            Signal = "reply_score"
	Repost           Signal = "repost_score"
	PhotoExpand      Signal = "photo_expand_score"
	Click            Signal = "click_score"
	ProfileClick     Signal = "profile_click_score"
	VideoView        Signal = "vqv_score"
	Share            Signal = "share_score"
	ShareViaDM       Signal = "share_via_dm_score"
	ShareViaCopyLink Signal = "share_via_copy_link_score"
	Dwell            Signal = "dwell_score"
	Quote            Signal = "quote_score"
	QuotedClick      Signal = "quoted_click_score"
	FollowAuthor     Signal = "follow_author_score"
	NotInterested    Signal = "not_interested_score"
	BlockAuthor      Signal = "block_author_score"
	MuteAuthor       Signal = "mute_author_score"
	Report           Signal = "report_score"
	DwellTime        Signal = "dwell_time"
)

// order is the canonical catalog order. It is stable across runs and defines
// display and summation order for reproducible reports.
var order = []Signal{
	Favorite,
	Reply,
	Repost,
	PhotoExpand,
	Click,
	ProfileClick,
	VideoView,
	Share,
	ShareViaDM,
	ShareViaCopyLink,
	Dwell,
	Quote,
	QuotedClick,
	FollowAuthor,
	NotInterested,
	BlockAuthor,
	MuteAuthor,
	Report,
	DwellTime,
}

var labels = map[Signal]string{
	Favorite:         "Like",
	Reply:            "Reply",
	Repost:           "Retweet",
	PhotoExpand:      "Photo Expand",
	Click:            "Click",
	ProfileClick:     "Profile Click",
	VideoView:        "Video View",
	Share:            "Share",
	ShareViaDM:       "DM Share",
	ShareViaCopyLink: "Copy Link",
	Dwell:            "Dwell",
	Quote:            "Quote Tweet",
	QuotedClick:      "Quoted Click",
	FollowAuthor:     "Follow Author",
	NotInterested:    "Not Interested",
	BlockAuthor:      "Block",
	MuteAuthor:       "Mute",
	Report:           "Report",
	DwellTime:        "Read Duration",
}

// weights reflect the relative importance of each action in the combined
// ranking score. Positive actions carry positive weights; harmful outcomes
// carry large negative ones. Fixed constants, never computed.
var weights = map[Signal]float64{
	Favorite:         1.0,
	Reply:            27.0,
	Repost:           10.0,
	PhotoExpand:      0.3,
	Click:            0.3,
	ProfileClick:     2.0,
	VideoView:        0.2,
	Share:            1.0,
	ShareViaDM:       100.0, // strongest positive signal
	ShareViaCopyLink: 5.0,
	Dwell:            2.0,
	Quote:            40.0,
	QuotedClick:      0.5,
	FollowAuthor:     10.0,
	NotInterested:    -74.0,
	BlockAuthor:      -371.0,
	MuteAuthor:       -74.0,
	Report:           -9209.0, // strongest negative signal
	DwellTime:        0.8,
}

// negative marks actions whose increase is a worse outcome for ranking.
var negative = map[Signal]bool{
	NotInterested: true,
	BlockAuthor:   true,
	MuteAuthor:    true,
	Report:        true,
}

// UnknownSignalError reports a signal identifier outside the fixed catalog.
type UnknownSignalError struct {
	Signal string
}

func (e *UnknownSignalError) Error() string {
	return "unknown signal: " + e.Signal
}

// Signals returns the catalog in canonical order.
func Signals() []Signal {
	out := make([]Signal, len(order))
	copy(out, order)
	return out
}

// Known reports whether s is in the catalog.
func Known(s Signal) bool {
	_, ok := weights[s]
	return ok
}

// Label returns the display label for s.
func Label(s Signal) (string, error) {
	l, ok := labels[s]
	if !ok {
		return "", &UnknownSignalError{Signal: string(s)}
	}
	return l, nil
}

// Weight returns the ranking weight for s.
func Weight(s Signal) (float64, error) {
	w, ok := weights[s]
	if !ok {
		return 0, &UnknownSignalError{Signal: string(s)}
	}
	return w, nil
}

// IsNegative reports whether s is a bad-outcome signal.
func IsNegative(s Signal) bool {
	return negative[s]
}

// NegativeSignals returns the bad-outcome signals in catalog order.
func NegativeSignals() []Signal {
	out := make([]Signal, 0, len(negative))
	for _, s := range order {
		if negative[s] {
			out = append(out, s)
		}
	}
	return out
}
