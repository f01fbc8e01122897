// Package discovery turns a research assistant's freeform text about what
// is trending into structured topics and content angles.
package discovery

// Angle is a content strategy for writing about a trending topic.
type Angle string

const (
	AngleDominant   Angle = "dominant"
	AngleContrarian Angle = "contrarian"
	AnglePersonal   Angle = "personal"
)

// Angles lists the built-in angles in menu order.
var Angles = []Angle{AngleDominant, AngleContrarian, AnglePersonal}

type angleText struct {
	labelEN, labelTR             string
	instructionEN, instructionTR string
}

var angleTexts = map[Angle]angleText{
	AngleDominant: {
		labelEN: "Align with the popular opinion",
		labelTR: "Populer gorusle ayni yonde yaz",
		instructionEN: "Write a tweet that aligns with the dominant/popular opinion on this topic. " +
			"Validate what most people are thinking. This builds relatability and " +
			"boosts favorite_score and repost_score.",
		instructionTR: "Bu konuda populer gorusle ayni yonde bir tweet yaz. " +
			"Cogunlugun dusundugunu dogrula. Bu yaklasim begeni ve " +
			"retweet sinyallerini guclendirir.",
	},
	AngleContrarian: {
		labelEN: "Take the contrarian angle (higher engagement potential)",
		labelTR: "Karsi gorusle yaz (daha yuksek etkilesim potansiyeli)",
		instructionEN: "Write a tweet that presents a contrarian or opposing view on this topic. " +
			"Challenge the mainstream narrative with a well-reasoned take. " +
			"Contrarian tweets trigger significantly higher quote_score (weight=40) " +
			"and reply_score (weight=27) because people feel compelled to respond. " +
			"Be provocative but not offensive — avoid block/report triggers.",
		instructionTR: "Bu konuda karsi veya farkli bir bakis acisi sunan bir tweet yaz. " +
			"Ana akim anlatiyi iyi gerekcelendirilmis bir gorusle sorgula. " +
			"Karsi gorusler quote_score (agirlik=40) ve reply_score (agirlik=27) " +
			"sinyallerini guclu sekilde tetikler. Provokatif ama saygili ol.",
	},
	AnglePersonal: {
		labelEN: "Share personal insight / experience",
		labelTR: "Kisisel deneyim / ozgun bakis acisi paylas",
		instructionEN: "Write a tweet sharing a personal experience, unique insight, or " +
			"behind-the-scenes perspective related to this topic. " +
			"Personal stories are the strongest driver of share_via_dm_score " +
			"(weight=100 — the single most powerful signal) because people forward " +
			"them to specific friends. Use first person, be authentic.",
		instructionTR: "Bu konuyla ilgili kisisel bir deneyim, ozgun bir bakis acisi veya " +
			"perde arkasi bilgi paylasan bir tweet yaz. " +
			"Kisisel hikayeler share_via_dm_score (agirlik=100 — en guclu sinyal) " +
			"sinyalini en cok tetikleyen icerik turudur. Birinci tekil sahis kullan, " +
			"samimi ol.",
	},
}

// Label returns the menu label for an angle. Unknown angles fall back to
// the dominant angle.
func (a Angle) Label(lang string) string {
	t, ok := angleTexts[a]
	if !ok {
		t = angleTexts[AngleDominant]
	}
	if lang == "tr" {
		return t.labelTR
	}
	return t.labelEN
}

// Instruction returns the prompt instruction for an angle.
func (a Angle) Instruction(lang string) string {
	t, ok := angleTexts[a]
	if !ok {
		t = angleTexts[AngleDominant]
	}
	if lang == "tr" {
		return t.instructionTR
	}
	return t.instructionEN
}
