// ABOUTME: Canned per-platform templates, tone openers, and image URLs for the mock generator.
// ABOUTME: Body templates take the tone opener and the topic, in that order.
package generator

type template struct {
	bodies   []string
	hashtags []string
	ctas     []string
	notes    string
}

var openers = map[string]string{
	"professional":  "Here is what the data says.",
	"casual":        "Okay, real talk.",
	"humorous":      "Nobody asked, but here we go.",
	"inspirational": "Small steps add up.",
	"educational":   "Let's break it down.",
}

var templates = map[string]template{
	"instagram": {
		bodies: []string{
			"%s\n\nEverything I wish I knew about %s, in one carousel. Swipe through and save it for later.",
			"%s\n\n%s: the before, the after, and the three changes in between.",
		},
		hashtags: []string{"#contentcreator", "#instagood", "#tips"},
		ctas:     []string{"Save this post for later!", "Share with a friend who needs this.", "Drop a comment with your take."},
		notes:    "Use a bold cover slide and keep each slide under 20 words. Post between 11am and 1pm.",
	},
	"tiktok": {
		bodies: []string{
			"%s\n\nPOV: you finally figured out %s. Hook in the first second, payoff by second seven.",
			"%s\n\n3 things about %s nobody tells you. Number 2 surprised me.",
		},
		hashtags: []string{"#fyp", "#learnontiktok", "#viral"},
		ctas:     []string{"Follow for part 2!", "Stitch this with your version.", "Comment 'more' for the full guide."},
		notes:    "Vertical 9:16, 15 to 30 seconds. Add on-screen captions and a trending sound at low volume.",
	},
	"youtube": {
		bodies: []string{
			"%s\n\nIn this video we go deep on %s: what works, what doesn't, and a step-by-step plan you can follow today.",
			"%s\n\nI tried %s for 30 days. Here is the honest result.",
		},
		hashtags: []string{"#youtube", "#howto", "#tutorial"},
		ctas:     []string{"Subscribe and hit the bell for the next episode.", "Check the description for resources."},
		notes:    "Aim for 8 to 12 minutes with chapters. Thumbnail: close-up face plus three-word title.",
	},
	"twitter": {
		bodies: []string{
			"%s\n\n%s, in one thread 🧵",
			"%s\n\nHot take on %s: most advice is backwards. Here is why.",
		},
		hashtags: []string{"#buildinpublic", "#thread"},
		ctas:     []string{"Retweet the first post to help others find this.", "Follow for more threads like this."},
		notes:    "Keep the first post under 200 characters. Number the thread and end with a summary.",
	},
	"linkedin": {
		bodies: []string{
			"%s\n\nA year ago I knew nothing about %s. Three lessons that changed how our team works:",
			"%s\n\n%s is not a trend. It is a skill. Here is how to build it deliberately.",
		},
		hashtags: []string{"#leadership", "#careergrowth", "#professionaldevelopment"},
		ctas:     []string{"What has your experience been? Share below.", "Repost if this resonates with your network."},
		notes:    "Open with a one-line hook, use short paragraphs, and post Tuesday to Thursday morning.",
	},
}

func templateFor(platform string) template {
	if t, ok := templates[platform]; ok {
		return t
	}
	return templates["instagram"]
}

var imageURLs = []string{
	"https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe",
	"https://images.unsplash.com/photo-1620641788421-7a1c342ea42e",
	"https://images.unsplash.com/photo-1634017839464-5c339ebe3cb4",
	"https://images.unsplash.com/photo-1579546929518-9e396f3cc809",
}
