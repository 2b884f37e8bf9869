package task

// OriginalPrompt is the exact prompt used in the Manifold Markets test of
// GPT-3.5 and GPT-4.
const OriginalPrompt = "Write an introduction for the article about the impact of global warming on indigenous people of Finland"

const originalTrials = 10

// VariedPrompts returns the fixed set of prompts used by the word-usage
// task. The prompts span academic, research, deep-analysis, and creative
// topics where elaborate explanatory language is stylistically likely.
func VariedPrompts() []string {
	return []string{
		// Original prompt from the Manifold Markets example
		"Write an introduction for the article about the impact of global warming on indigenous people of Finland",

		// Academic/analytical prompts
		"Analyze the themes in Shakespeare's Hamlet",
		"Discuss the causes of the French Revolution",
		"Examine the relationship between technology and society",
		"Explore the concept of artificial intelligence ethics",
		"Investigate the effects of social media on mental health",

		// Research-oriented prompts
		"Research the history of quantum computing",
		"Study the impact of renewable energy on the economy",
		"Look into the cultural significance of ancient Greek philosophy",
		"Examine the role of women in the Industrial Revolution",
		"Analyze the development of modern democracy",

		// Deep analysis prompts
		"Provide a comprehensive analysis of climate change mitigation strategies",
		"Offer an in-depth exploration of machine learning algorithms",
		"Give a thorough examination of postmodern literature",
		"Present a detailed study of urban planning principles",
		"Conduct a deep investigation into cryptocurrency markets",

		// Creative writing prompts that still pull analytical language
		"Write about the mysteries of the ocean depths",
		"Describe a journey into the human psyche",
		"Explore the concept of time travel in fiction",
		"Discuss the philosophical implications of virtual reality",
		"Examine the role of mythology in modern storytelling",
	}
}
