package credibility

import (
	"math"
	"strings"
	"unicode"

	"github.com/khoahotran/credably/internal/domain/social"
)

// Factor names are shown as-is in the dashboard.
const (
	FactorDegreeLevel         = "Degree Level"
	FactorInstitution         = "Institution"
	FactorFieldOfStudy        = "Field of Study"
	FactorYearsExperience     = "Years of Experience"
	FactorPositionsHeld       = "Positions Held"
	FactorProfileCompleteness = "Profile Completeness"
	FactorSkillBreadth        = "Skill Breadth"
	FactorAverageProficiency  = "Average Proficiency"
	FactorVerifiedSkills      = "Verified Skills"
	FactorGitHubActivity      = "GitHub Activity"
	FactorLinkedInConnections = "LinkedIn Connections"
	FactorGitHubFollowers     = "GitHub Followers"
	FactorTwitterFollowers    = "Twitter Followers"
	FactorContentReach        = "Content Reach"
	FactorCertificationCount  = "Certification Count"
	FactorVerifiedCredentials = "Verified Credentials"
	FactorActiveCerts         = "Active Certifications"
)

// linkedInPlaceholder is the LinkedIn factor for users who have not connected
// LinkedIn. Once connected, the recorded connection count is scored instead.
const linkedInPlaceholder = 50

const hoursPerYear = 24 * 365

func educationScore(in Input) CategoryScore {
	degree, institution, field := 0, 0, 0
	for _, e := range in.Profile.Education {
		degree = max(degree, degreePoints(e.Degree))
		if strings.TrimSpace(e.Institution) != "" {
			institution = 80
		}
		if strings.TrimSpace(e.FieldOfStudy) != "" {
			field = 70
		}
	}
	return category(CategoryEducation, map[string]int{
		FactorDegreeLevel:  degree,
		FactorInstitution:  institution,
		FactorFieldOfStudy: field,
	})
}

func experienceScore(in Input) CategoryScore {
	p := in.Profile

	years := p.YearsExperience
	if years <= 0 {
		var hours float64
		for _, pos := range p.Positions {
			end := in.Now
			if pos.EndDate != nil && !pos.Current {
				end = *pos.EndDate
			}
			if end.After(pos.StartDate) {
				hours += end.Sub(pos.StartDate).Hours()
			}
		}
		years = int(hours / hoursPerYear)
	}

	completeness := 0
	if strings.TrimSpace(p.Bio) != "" {
		completeness += 60
	}
	if strings.TrimSpace(p.Headline) != "" {
		completeness += 20
	}
	if strings.TrimSpace(p.Location) != "" {
		completeness += 20
	}

	return category(CategoryExperience, map[string]int{
		FactorYearsExperience:     years * 10,
		FactorPositionsHeld:       len(p.Positions) * 20,
		FactorProfileCompleteness: completeness,
	})
}

func technicalScore(in Input) CategoryScore {
	total, verified := 0, 0
	for _, us := range in.Skills {
		total += us.Proficiency
		if us.Verified {
			verified++
		}
	}
	avg := 0
	if len(in.Skills) > 0 {
		avg = roundDiv(total, len(in.Skills))
	}
	github := 0
	if in.GitHub != nil {
		github = in.GitHub.PublicRepos * 5
	}

	return category(CategoryTechnical, map[string]int{
		FactorSkillBreadth:       len(in.Skills) * 5,
		FactorAverageProficiency: avg,
		FactorVerifiedSkills:     roundDiv(verified*100, 5),
		FactorGitHubActivity:     github,
	})
}

func socialScore(in Input) CategoryScore {
	linkedIn := linkedInPlaceholder
	if li := social.FindPlatform(in.Socials, social.PlatformLinkedIn); li != nil {
		linkedIn = social.FollowerScore(li.Followers)
	}

	githubFollowers := 0
	if in.GitHub != nil {
		githubFollowers = in.GitHub.Followers
	} else if gh := social.FindPlatform(in.Socials, social.PlatformGitHub); gh != nil {
		githubFollowers = gh.Followers
	}

	twitter := 0
	if tw := social.FindPlatform(in.Socials, social.PlatformTwitter); tw != nil {
		twitter = tw.Followers
	}

	reach := 0
	for _, p := range []social.Platform{social.PlatformYouTube, social.PlatformInstagram} {
		if sp := social.FindPlatform(in.Socials, p); sp != nil {
			reach = max(reach, sp.Followers)
		}
	}

	return category(CategorySocial, map[string]int{
		FactorLinkedInConnections: linkedIn,
		FactorGitHubFollowers:     social.FollowerScore(githubFollowers),
		FactorTwitterFollowers:    social.FollowerScore(twitter),
		FactorContentReach:        social.FollowerScore(reach),
	})
}

func certificationsScore(in Input) CategoryScore {
	n := len(in.Certifications)
	withCredential, active := 0, 0
	for _, c := range in.Certifications {
		if c.HasCredential() {
			withCredential++
		}
		if c.ActiveAt(in.Now) {
			active++
		}
	}

	verifiedShare, activeShare := 0, 0
	if n > 0 {
		verifiedShare = roundDiv(withCredential*100, n)
		activeShare = roundDiv(active*100, n)
	}

	return category(CategoryCertifications, map[string]int{
		FactorCertificationCount:  n * 25,
		FactorVerifiedCredentials: verifiedShare,
		FactorActiveCerts:         activeShare,
	})
}

// category clamps every factor and scores the category as their rounded mean.
func category(c Category, factors map[string]int) CategoryScore {
	sum := 0
	for name, v := range factors {
		v = clamp(v)
		factors[name] = v
		sum += v
	}
	return CategoryScore{
		Score:   roundDiv(sum, len(factors)),
		Weight:  Weight(c),
		Factors: factors,
	}
}

func degreePoints(degree string) int {
	if strings.TrimSpace(degree) == "" {
		return 0
	}
	d := strings.ToLower(strings.ReplaceAll(degree, ".", ""))
	tokens := strings.FieldsFunc(d, func(r rune) bool { return !unicode.IsLetter(r) })
	has := func(words ...string) bool {
		for _, t := range tokens {
			for _, w := range words {
				if t == w {
					return true
				}
			}
		}
		return false
	}

	switch {
	case strings.Contains(d, "doctor") || has("phd", "dphil", "edd"):
		return 100
	case strings.Contains(d, "master") || has("mba", "msc", "ms", "ma", "meng", "mphil"):
		return 85
	case strings.Contains(d, "bachelor") || has("bsc", "ba", "bs", "beng", "btech", "bba"):
		return 70
	case strings.Contains(d, "associate") || has("aa", "aas"):
		return 55
	default:
		return 40
	}
}

func clamp(v int) int {
	return min(100, max(0, v))
}

// roundDiv returns round(a/b) for non-negative a and positive b.
func roundDiv(a, b int) int {
	return int(math.Round(float64(a) / float64(b)))
}
