package credibility_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/khoahotran/credably/internal/domain/certification"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/internal/domain/profile"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/internal/domain/social"
)

func breakdown(edu, exp, tech, soc, cert int) credibility.Breakdown {
	return credibility.Breakdown{
		credibility.CategoryEducation:      {Score: edu},
		credibility.CategoryExperience:     {Score: exp},
		credibility.CategoryTechnical:      {Score: tech},
		credibility.CategorySocial:         {Score: soc},
		credibility.CategoryCertifications: {Score: cert},
	}
}

func TestCombine(t *testing.T) {
	Convey("Given the fixed category weights", t, func() {
		Convey("They sum to 1.0", func() {
			sum := 0.0
			for _, c := range credibility.Categories {
				sum += credibility.Weight(c)
			}
			So(sum, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("The documented example combines to 77 and premium", func() {
			overall := credibility.Combine(breakdown(85, 75, 82, 65, 70))
			So(overall, ShouldEqual, 77)
			So(credibility.LevelFor(overall), ShouldEqual, credibility.LevelPremium)
		})

		Convey("Halves round up", func() {
			// 0.25*50 + 0.30*50 + 0.20*50 + 0.15*50 + 0.10*55 = 50.5
			So(credibility.Combine(breakdown(50, 50, 50, 50, 55)), ShouldEqual, 51)
		})

		Convey("Out of range category scores cannot escape [0,100]", func() {
			So(credibility.Combine(breakdown(250, 300, 999, 101, 100)), ShouldEqual, 100)
			So(credibility.Combine(breakdown(-10, -1, 0, -50, 0)), ShouldEqual, 0)
		})

		Convey("Any combination of valid scores stays within bounds and is deterministic", func() {
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 500; i++ {
				b := breakdown(rng.Intn(101), rng.Intn(101), rng.Intn(101), rng.Intn(101), rng.Intn(101))
				first := credibility.Combine(b)
				So(first, ShouldBeBetweenOrEqual, 0, 100)
				So(credibility.Combine(b), ShouldEqual, first)
			}
		})
	})
}

func TestLevelFor(t *testing.T) {
	Convey("Verification level is a step function of the overall score", t, func() {
		cases := map[int]credibility.VerificationLevel{
			0:   credibility.LevelBasic,
			59:  credibility.LevelBasic,
			60:  credibility.LevelVerified,
			74:  credibility.LevelVerified,
			75:  credibility.LevelPremium,
			89:  credibility.LevelPremium,
			90:  credibility.LevelElite,
			100: credibility.LevelElite,
		}
		for score, want := range cases {
			So(credibility.LevelFor(score), ShouldEqual, want)
		}
	})
}

func TestCalculate(t *testing.T) {
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	Convey("Given a user with no evidence at all", t, func() {
		score := credibility.Calculate(userID, credibility.Input{Now: now})

		Convey("Only the LinkedIn placeholder contributes", func() {
			social := score.Breakdown[credibility.CategorySocial]
			So(social.Factors[credibility.FactorLinkedInConnections], ShouldEqual, 50)
			So(social.Score, ShouldEqual, 13)
			So(score.EducationScore, ShouldEqual, 0)
			So(score.ExperienceScore, ShouldEqual, 0)
			So(score.TechnicalScore, ShouldEqual, 0)
			So(score.CertificationsScore, ShouldEqual, 0)
			So(score.OverallScore, ShouldEqual, 2)
			So(score.VerificationLevel, ShouldEqual, credibility.LevelBasic)
			So(score.CalculatedAt, ShouldEqual, now)
		})
	})

	Convey("Given a well documented profile", t, func() {
		url := "https://credentials.example.com/abc"
		expired := now.AddDate(-1, 0, 0)
		in := credibility.Input{
			Now: now,
			Profile: &profile.Profile{
				UserID:          userID,
				Headline:        "Staff Engineer",
				Bio:             "Builds distributed systems.",
				Location:        "Berlin",
				YearsExperience: 12,
				Education: []profile.Education{
					{Degree: "B.Sc.", Institution: "TU Berlin", FieldOfStudy: "Computer Science"},
					{Degree: "M.Sc.", Institution: "TU Berlin"},
				},
				Positions: []profile.Position{
					{Title: "Engineer"}, {Title: "Senior Engineer"}, {Title: "Staff Engineer", Current: true},
				},
			},
			Skills: []*skill.UserSkill{
				{Proficiency: 90, Verified: true},
				{Proficiency: 80, Verified: true},
				{Proficiency: 70},
				{Proficiency: 60},
			},
			GitHub: &social.GitHubProfile{Followers: 999, PublicRepos: 30},
			Socials: []*social.SocialProfile{
				{Platform: social.PlatformTwitter, Followers: 99},
				{Platform: social.PlatformYouTube, Followers: 9},
				{Platform: social.PlatformInstagram, Followers: 999},
			},
			Certifications: []*certification.Certification{
				{Name: "CKA", CredentialURL: &url},
				{Name: "AWS SA", ExpiryDate: &expired},
			},
		}

		score := credibility.Calculate(userID, in)

		Convey("Education takes the highest degree", func() {
			edu := score.Breakdown[credibility.CategoryEducation]
			So(edu.Factors[credibility.FactorDegreeLevel], ShouldEqual, 85)
			So(edu.Score, ShouldEqual, 78) // (85+80+70)/3
			So(edu.Weight, ShouldEqual, 0.25)
		})

		Convey("Experience caps years and positions at 100", func() {
			exp := score.Breakdown[credibility.CategoryExperience]
			So(exp.Factors[credibility.FactorYearsExperience], ShouldEqual, 100)
			So(exp.Factors[credibility.FactorPositionsHeld], ShouldEqual, 60)
			So(exp.Factors[credibility.FactorProfileCompleteness], ShouldEqual, 100)
			So(exp.Score, ShouldEqual, 87)
		})

		Convey("Technical averages breadth, proficiency, verification and GitHub", func() {
			tech := score.Breakdown[credibility.CategoryTechnical]
			So(tech.Factors[credibility.FactorSkillBreadth], ShouldEqual, 20)
			So(tech.Factors[credibility.FactorAverageProficiency], ShouldEqual, 75)
			So(tech.Factors[credibility.FactorVerifiedSkills], ShouldEqual, 40)
			So(tech.Factors[credibility.FactorGitHubActivity], ShouldEqual, 100)
			So(tech.Score, ShouldEqual, 59)
		})

		Convey("Social uses logarithmic follower weighting", func() {
			soc := score.Breakdown[credibility.CategorySocial]
			So(soc.Factors[credibility.FactorGitHubFollowers], ShouldEqual, 75)
			So(soc.Factors[credibility.FactorTwitterFollowers], ShouldEqual, 50)
			So(soc.Factors[credibility.FactorContentReach], ShouldEqual, 75)
			So(soc.Score, ShouldEqual, 63) // (50+75+50+75)/4 = 62.5
		})

		Convey("Certifications count credentials and expiry", func() {
			cert := score.Breakdown[credibility.CategoryCertifications]
			So(cert.Factors[credibility.FactorCertificationCount], ShouldEqual, 50)
			So(cert.Factors[credibility.FactorVerifiedCredentials], ShouldEqual, 50)
			So(cert.Factors[credibility.FactorActiveCerts], ShouldEqual, 50)
			So(cert.Score, ShouldEqual, 50)
		})

		Convey("The overall score is the weighted combination of the categories", func() {
			So(score.OverallScore, ShouldEqual, credibility.Combine(score.Breakdown))
			// 78*.25 + 87*.30 + 59*.20 + 63*.15 + 50*.10 = 71.95
			So(score.OverallScore, ShouldEqual, 72)
			So(score.VerificationLevel, ShouldEqual, credibility.LevelVerified)
		})

		Convey("Recalculating the same input is idempotent", func() {
			again := credibility.Calculate(userID, in)
			So(again.OverallScore, ShouldEqual, score.OverallScore)
			So(again.Breakdown, ShouldResemble, score.Breakdown)
		})
	})

	Convey("Given positions without an explicit years value", t, func() {
		end := now.AddDate(-1, 0, 0)
		in := credibility.Input{
			Now: now,
			Profile: &profile.Profile{
				Positions: []profile.Position{
					{StartDate: now.AddDate(-6, 0, 0), EndDate: &end},
					{StartDate: now.AddDate(0, -6, 0), Current: true},
				},
			},
		}
		exp := credibility.Calculate(userID, in).Breakdown[credibility.CategoryExperience]

		Convey("Years are summed from the position dates", func() {
			So(exp.Factors[credibility.FactorYearsExperience], ShouldEqual, 50)
		})
	})

	Convey("Given a recorded LinkedIn connection count", t, func() {
		in := credibility.Input{
			Now:     now,
			Socials: []*social.SocialProfile{{Platform: social.PlatformLinkedIn, Followers: 9999}},
		}
		soc := credibility.Calculate(userID, in).Breakdown[credibility.CategorySocial]

		Convey("It replaces the placeholder", func() {
			So(soc.Factors[credibility.FactorLinkedInConnections], ShouldEqual, 100)
		})
	})
}

func TestDegreeLevel(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	degreeFactor := func(degree string) int {
		in := credibility.Input{
			Now:     now,
			Profile: &profile.Profile{Education: []profile.Education{{Degree: degree}}},
		}
		edu := credibility.Calculate(uuid.New(), in).Breakdown[credibility.CategoryEducation]
		return edu.Factors[credibility.FactorDegreeLevel]
	}

	Convey("Degrees are ranked by level", t, func() {
		So(degreeFactor("PhD in Physics"), ShouldEqual, 100)
		So(degreeFactor("MBA"), ShouldEqual, 85)
		So(degreeFactor("Bachelor of Arts"), ShouldEqual, 70)
		So(degreeFactor("A.A.S."), ShouldEqual, 55)
	})

	Convey("Any other recorded degree scores 40", t, func() {
		So(degreeFactor("Diploma"), ShouldEqual, 40)
		So(degreeFactor("3"), ShouldEqual, 40)
		So(degreeFactor("-"), ShouldEqual, 40)
	})

	Convey("A blank degree scores nothing", t, func() {
		So(degreeFactor("   "), ShouldEqual, 0)
	})
}
