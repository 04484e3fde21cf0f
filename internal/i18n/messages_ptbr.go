package i18n

import (
	"golang.org/x/text/message"
)

func init() {
	lang := PortugueseBR

	message.SetString(lang, AppTitle, "Na Pele e na Consciência")

	message.SetString(lang, FieldName, "Nome")
	message.SetString(lang, FieldNickname, "Apelido")
	message.SetString(lang, FieldEmail, "Email")
	message.SetString(lang, FieldPassword, "Senha")
	message.SetString(lang, FieldConfirm, "Confirmar senha")
	message.SetString(lang, FieldNewPassword, "Nova senha")
	message.SetString(lang, FieldCode, "Código")

	message.SetString(lang, LoginTitle, "Entrar")
	message.SetString(lang, LoginHelp, "enter: continuar • tab: próximo campo • ctrl+r: cadastrar • ctrl+f: esqueci a senha • ctrl+s: mostrar senha • esc: sair")
	message.SetString(lang, RegisterTitle, "Cadastro")
	message.SetString(lang, RegisterHelp, "enter: próximo campo • tab/shift+tab: navegar • ctrl+s: mostrar senha • esc: voltar")
	message.SetString(lang, VerifyTitle, "Verificação")
	message.SetString(lang, VerifyPrompt, "Enviamos um código de 6 dígitos para %s.")
	message.SetString(lang, VerifyHelp, "enter: verificar • ctrl+n: reenviar código • esc: voltar")
	message.SetString(lang, ResetTitle, "Redefinir senha")
	message.SetString(lang, ResetHelp, "enter: próximo campo • ctrl+s: mostrar senha • esc: voltar")
	message.SetString(lang, Loading, "Aguarde...")

	message.SetString(lang, CodeResent, "Novo código enviado para %s.")
	message.SetString(lang, RegisterDone, "Cadastro concluído! Bem-vindo(a), %s.")
	message.SetString(lang, ResetDone, "Senha redefinida. Entre com a nova senha.")
	message.SetString(lang, Welcome, "Olá, %s!")

	message.SetString(lang, ErrEmptyField, "Preencha todos os campos.")
	message.SetString(lang, ErrInvalidName, "O nome deve ter até 20 letras, sem números ou caracteres especiais.")
	message.SetString(lang, ErrInvalidNickname, "O apelido deve ter até 10 caracteres, sem espaços.")
	message.SetString(lang, ErrInvalidEmail, "Email inválido. Use um endereço %s.")
	message.SetString(lang, ErrInvalidPassword, "A senha deve ter exatamente 6 caracteres, sem letras nem espaços.")
	message.SetString(lang, ErrPasswordMismatch, "As senhas não coincidem.")
	message.SetString(lang, ErrEmailTaken, "Este email já está cadastrado.")
	message.SetString(lang, ErrNicknameTaken, "Este apelido já está em uso.")
	message.SetString(lang, ErrUnknownEmail, "Email não cadastrado.")
	message.SetString(lang, ErrBadPassword, "Senha incorreta. Tentativas restantes: %d.")
	message.SetString(lang, ErrTooManyAttempts, "Muitas tentativas incorretas. Redefina sua senha.")
	message.SetString(lang, ErrCodeFormat, "O código deve ter 6 dígitos.")
	message.SetString(lang, ErrCodeExpired, "Código expirado. Pressione ctrl+n para receber outro.")
	message.SetString(lang, ErrCodeMismatch, "Código incorreto.")
	message.SetString(lang, ErrCodeUsed, "Este código já foi usado.")
	message.SetString(lang, ErrSendFailed, "Não foi possível enviar o email. Tente novamente.")
	message.SetString(lang, ErrUnexpected, "Erro inesperado: %s")
	message.SetString(lang, ErrNoSelection, "Por favor, selecione uma opção antes de prosseguir.")
	message.SetString(lang, ErrAtRoot, "Você já está no início da história.")
	message.SetString(lang, ErrCorruption, "O progresso não corresponde mais à história. A história foi reiniciada.")
	message.SetString(lang, ErrSaveFailed, "Não foi possível salvar o progresso.")
	message.SetString(lang, ErrReflection, "Não foi possível gerar a reflexão personalizada.")

	message.SetString(lang, MenuTitle, "Escolha uma história")
	message.SetString(lang, MenuHelp, "↑/↓: navegar • enter: abrir • q: sair")
	message.SetString(lang, MenuContinue, "(continuar)")
	message.SetString(lang, MenuCompleted, "(concluída)")
	message.SetString(lang, StoryInDevelopment, "%s está em desenvolvimento.")
	message.SetString(lang, StoryLivia, "A Jornada da Dra. Lívia")
	message.SetString(lang, StoryInequality, "Desigualdade Social")

	message.SetString(lang, StoryHelp, "↑/↓ ou 1-9: selecionar • enter: 🚀 Prosseguir • b: ↩️ Voltar • r: 🔄 Reiniciar • esc: menu")
	message.SetString(lang, OutcomeHelp, "enter: continuar • b: ↩️ Voltar • r: 🔄 Reiniciar")
	message.SetString(lang, ReflectionTitle, "Reflexão")
	message.SetString(lang, ReflectionAI, "Uma reflexão sobre a sua escolha")
	message.SetString(lang, ReflectionWait, "Gerando uma reflexão sobre a sua escolha...")
	message.SetString(lang, ReflectionHelp, "enter: ver perfil • ↑/↓: rolar")
	message.SetString(lang, ProfileTitle, "Seu perfil")
	message.SetString(lang, ProfileHelp, "r: 🔄 Reiniciar • m: menu • q: sair")
	message.SetString(lang, AttributesTitle, "Atributos")

	message.SetString(lang, AttrJustice, "Justiça")
	message.SetString(lang, AttrReputation, "Reputação")
	message.SetString(lang, AttrEmpathy, "Empatia")
	message.SetString(lang, AttrStress, "Estresse")
}
