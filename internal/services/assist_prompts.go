package services

import (
	"fmt"
	"strings"

	"github.com/mentorhub/mentor-qa-service/internal/llm"
	"github.com/mentorhub/mentor-qa-service/internal/models"
)

const (
	mentorSystemPrompt      = "You are an experienced mentor and educator who provides detailed, helpful, and encouraging answers to students' questions."
	translationSystemPrompt = "You are a helpful AI assistant specialized in translation."
	defaultTargetLanguage   = "english"
)

var (
	answerOptions      = llm.GenerateOptions{MaxTokens: 1024, Temperature: 0.7}
	translationOptions = llm.GenerateOptions{MaxTokens: 512, Temperature: 0.7}
)

var languageNames = map[string]string{
	"chinese":  "Chinese",
	"japanese": "Japanese",
	"hindi":    "Hindi",
	"english":  "English",
}

func answerMessages(title, content, draft string) []models.ChatMessage {
	var prompt string
	if draft != "" {
		prompt = fmt.Sprintf("\n%s\n\nPlease enhance and expand this response to make it more comprehensive, detailed, and helpful for the student.\n", draft)
	} else {
		prompt = fmt.Sprintf(`
A student has asked the following question:

Title: %s
Question: %s

Please provide a detailed, comprehensive answer that will help the student learn and understand the topic better. Your response should be:
1. Educational and thorough
2. Encouraging and supportive
3. Include practical examples when relevant
4. Break down complex topics into understandable parts
5. Provide actionable advice when appropriate
6. Be written in a mentoring tone
`, title, content)
	}

	return []models.ChatMessage{
		{Role: "system", Content: mentorSystemPrompt},
		{Role: "user", Content: prompt},
	}
}

// translationMessages names the four known languages properly and passes any
// other language through as written.
func translationMessages(text, language string) []models.ChatMessage {
	name, ok := languageNames[strings.ToLower(language)]
	if !ok {
		name = language
	}
	return []models.ChatMessage{
		{Role: "system", Content: translationSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Please translate the following text into %s: %s", name, text)},
	}
}

// fallbackTranslations covers the student dashboard phrases for when the
// model can not be reached.
var fallbackTranslations = map[string]map[string]string{
	"chinese": {
		"Welcome back":                        "欢迎回来",
		"Ask Your Mentor":                     "询问您的导师",
		"Question Title":                      "问题标题",
		"Question Details":                    "问题详情",
		"Category":                            "类别",
		"Post Question":                       "发布问题",
		"What would you like to ask?":         "您想问什么？",
		"Describe your question in detail...": "详细描述您的问题...",
		"Ready to continue your learning journey? Explore your progress, connect with mentors, and achieve your goals!": "准备继续您的学习之旅？探索您的进步，与导师联系，实现您的目标！",
	},
	"japanese": {
		"Welcome back":                        "おかえりなさい",
		"Ask Your Mentor":                     "メンターに質問する",
		"Question Title":                      "質問のタイトル",
		"Question Details":                    "質問の詳細",
		"Category":                            "カテゴリー",
		"Post Question":                       "質問を投稿",
		"What would you like to ask?":         "何を質問したいですか？",
		"Describe your question in detail...": "質問を詳しく説明してください...",
		"Ready to continue your learning journey? Explore your progress, connect with mentors, and achieve your goals!": "学習の旅を続ける準備はできていますか？進歩を探り、メンターとつながり、目標を達成しましょう！",
	},
	"hindi": {
		"Welcome back":                        "वापसी पर स्वागत है",
		"Ask Your Mentor":                     "अपने मेंटर से पूछें",
		"Question Title":                      "प्रश्न का शीर्षक",
		"Question Details":                    "प्रश्न का विवरण",
		"Category":                            "श्रेणी",
		"Post Question":                       "प्रश्न पोस्ट करें",
		"What would you like to ask?":         "आप क्या पूछना चाहते हैं?",
		"Describe your question in detail...": "अपने प्रश्न का विस्तार से वर्णन करें...",
		"Ready to continue your learning journey? Explore your progress, connect with mentors, and achieve your goals!": "अपनी सीखने की यात्रा जारी रखने के लिए तैयार हैं? अपनी प्रगति देखें, मेंटर्स से जुड़ें, और अपने लक्ष्य हासिल करें!",
	},
}

// fallbackTranslate returns the dictionary entry for text, or text itself.
func fallbackTranslate(text, language string) string {
	if phrases, ok := fallbackTranslations[strings.ToLower(language)]; ok {
		if translated, ok := phrases[text]; ok {
			return translated
		}
	}
	return text
}
