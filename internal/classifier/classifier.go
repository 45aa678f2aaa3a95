// Package classifier assigns a topical section to article text by counting
// curated keyword hits. Matching is plain lower-cased substring search.
package classifier

import (
	"strings"

	"github.com/yzhyun/NextPicker/internal/domain"
)

// Keywords maps each classified section to its bilingual keyword list.
type Keywords map[domain.Section][]string

// DefaultKeywords returns the curated English + Korean lists.
func DefaultKeywords() Keywords {
	return Keywords{
		domain.SectionPolitics: {
			"politic", "election", "senate", "congress", "parliament", "president",
			"government", "minister", "lawmaker", "democrat", "republican", "white house",
			"campaign", "legislation", "vote", "diplomat",
			"정치", "대통령", "국회", "선거", "정부", "장관", "여당", "야당", "의원", "총리", "탄핵", "외교",
		},
		domain.SectionBusiness: {
			"business", "economy", "economic", "market", "stock", "shares", "investor",
			"earnings", "revenue", "profit", "inflation", "interest rate", "federal reserve",
			"wall street", "nasdaq", "dow jones", "s&p 500", "bank", "tariff", "merger",
			"acquisition", "billion",
			"경제", "증시", "주가", "코스피", "코스닥", "금리", "환율", "기업", "투자", "매출", "수출",
			"부동산", "은행", "실적",
		},
		domain.SectionTechnology: {
			"technology", "tech", "software", "hardware", "artificial intelligence", "openai",
			"chatgpt", "semiconductor", "chipmaker", "chips", "smartphone", "iphone", "google",
			"microsoft", "nvidia", "startup", "cyber", "robot", "internet", "computer", "data center",
			"기술", "반도체", "인공지능", "스마트폰", "삼성전자", "네이버", "카카오", "소프트웨어", "로봇",
			"플랫폼", "통신",
		},
		domain.SectionSports: {
			"sports", "league", "championship", "tournament", "olympic", "football", "soccer",
			"baseball", "basketball", "nba", "nfl", "mlb", "fifa", "world cup", "coach", "player",
			"playoff", "match",
			"스포츠", "야구", "축구", "농구", "배구", "골프", "올림픽", "월드컵", "선수", "리그",
		},
		domain.SectionEntertainment: {
			"entertainment", "movie", "film", "music", "celebrity", "actress", "singer",
			"album", "concert", "box office", "netflix", "hollywood", "grammy", "oscar", "k-pop",
			"연예", "영화", "드라마", "가수", "아이돌", "음악", "공연", "예능", "방송",
		},
		domain.SectionHealth: {
			"health", "medical", "medicine", "hospital", "doctor", "patient", "disease", "virus",
			"vaccine", "covid", "cancer", "fda", "drug", "obesity",
			"건강", "의료", "병원", "의사", "환자", "질병", "백신", "코로나", "치료", "보건", "의약품",
		},
		domain.SectionScience: {
			"science", "scientist", "research", "space", "nasa", "climate", "physics", "astronom",
			"planet", "species", "fossil", "quantum", "genome",
			"과학", "연구", "우주", "기후", "물리", "천문", "유전자",
		},
	}
}

type Classifier struct {
	keywords Keywords
}

// New builds a classifier over the default keyword lists.
func New() *Classifier {
	return NewWithKeywords(DefaultKeywords())
}

// NewWithKeywords lower-cases the given lists once so Classify can compare
// against case-folded text directly.
func NewWithKeywords(kw Keywords) *Classifier {
	folded := make(Keywords, len(kw))
	for section, words := range kw {
		list := make([]string, 0, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				list = append(list, w)
			}
		}
		folded[section] = list
	}
	return &Classifier{keywords: folded}
}

// Scores counts, per section, how many of its keywords occur in text.
func (c *Classifier) Scores(text string) map[domain.Section]int {
	text = strings.ToLower(text)
	scores := make(map[domain.Section]int, len(domain.ClassifiedSections))
	for _, section := range domain.ClassifiedSections {
		n := 0
		for _, kw := range c.keywords[section] {
			if strings.Contains(text, kw) {
				n++
			}
		}
		scores[section] = n
	}
	return scores
}

// Classify returns the section with the strictly highest nonzero score.
// Ties go to the section listed first in domain.ClassifiedSections.
func (c *Classifier) Classify(title, summary string) domain.Section {
	scores := c.Scores(title + " " + summary)

	best, bestScore := domain.SectionGeneral, 0
	for _, section := range domain.ClassifiedSections {
		if scores[section] > bestScore {
			best, bestScore = section, scores[section]
		}
	}
	return best
}
