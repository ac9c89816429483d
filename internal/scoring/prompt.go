package scoring

// DefaultInstruction asks for a 0-10 flame-risk score, number only.
// Kept in Japanese to match the model this was tuned against.
const DefaultInstruction = "次のツイートの炎上危険度を0から10の数値で答えてください。数値だけを出力してください。"

// BuildPrompt joins the instruction and the tweet body with a blank
// line between them.
func BuildPrompt(instruction, text string) string {
	return instruction + "\n\n" + text
}
