package controllers

import (
	"math/rand"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saldomental/saldo/utils"
)

// ChatController serves the scripted coach. Replies are canned and picked
// at random; nothing is stored.
type ChatController struct{}

// NewChatController creates a ChatController.
func NewChatController() *ChatController {
	return &ChatController{}
}

const coachGreeting = "Olá! Sou seu Coach Virtual. Estou aqui para te apoiar 24/7, de forma totalmente confidencial. Como posso te ajudar hoje?"

var coachReplies = []string{
	"Entendo como você está se sentindo. Vamos trabalhar isso juntos. O que especificamente está te incomodando agora?",
	"Essa é uma observação muito importante. Reconhecer o que sentimos é o primeiro passo. Como você lidou com situações parecidas antes?",
	"Você está fazendo um trabalho incrível ao buscar ajuda. Lembre-se: cada conversa é um passo em direção ao seu bem-estar.",
	"Vamos usar uma técnica de TCC aqui. Quando esse pensamento surgir, tente identificar: é um fato ou uma interpretação? Isso pode te ajudar a ganhar perspectiva.",
	"Estou aqui para você. Que tal explorarmos estratégias práticas para lidar com esse momento? Você já tentou técnicas de respiração ou distração?",
}

// Greeting returns the fixed opening message of the coach.
func (c *ChatController) Greeting(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"reply": coachGreeting})
}

// Message accepts a user message and returns a random canned reply.
func (c *ChatController) Message(ctx *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid request payload")
		return
	}

	utils.Success(ctx, gin.H{
		"reply": coachReplies[rand.Intn(len(coachReplies))],
	})
}
