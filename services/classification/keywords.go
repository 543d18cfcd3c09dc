package classification

// keywordRule maps a fragment of a category path to the ticket vocabulary
// that points at it. Weight grows with specificity.
type keywordRule struct {
	Keyword  string
	Synonyms []string
	Weight   int
}

// keywordRules is ordered from most to least specific. The keyword must
// appear in the category path; any synonym hit in the ticket text scores.
var keywordRules = []keywordRule{
	// Access requests
	{"acesso remoto / vpn", []string{"acesso remoto", "vpn", "conexão remota", "acesso vpn", "conectar remotamente"}, 25},
	{"criação de usuário / conta", []string{"criar usuário", "criar conta", "nova conta", "novo usuário", "criação de usuário"}, 25},
	{"liberação de rede / wi-fi", []string{"liberar rede", "liberar wi-fi", "liberar wifi", "acesso à rede", "acesso wi-fi"}, 25},
	{"pastas de rede", []string{"acesso a pasta", "pasta de rede", "compartilhamento", "pasta compartilhada"}, 20},
	{"acesso", []string{"acesso", "permissão", "login", "senha"}, 15},
	{"ad", []string{"ad", "active directory", "diretório ativo", "domínio"}, 12},

	// Equipment requests
	{"novo equipamento", []string{"novo equipamento", "novo computador", "novo notebook", "novo pc", "equipamento novo"}, 25},
	{"mudança de local", []string{"mudança de local", "trocar de lugar", "mudar localização", "mudar de sala"}, 25},
	{"reparo / substituição", []string{"reparo", "substituição", "trocar", "consertar", "manutenção"}, 25},
	{"nova impressora / instalação", []string{"nova impressora", "instalar impressora", "configurar impressora"}, 25},
	{"solicitação de toner", []string{"toner", "solicitar toner", "preciso de toner", "toner acabou"}, 25},
	{"manutenção / reparo", []string{"manutenção", "reparo", "conserto"}, 20},
	{"novo servidor / vm", []string{"novo servidor", "nova vm", "nova máquina virtual", "criar servidor"}, 25},
	{"ajuste de configuração", []string{"ajuste de configuração", "configurar servidor", "ajustar servidor"}, 25},
	{"instalação / substituição de equipamento", []string{"instalar equipamento", "substituir equipamento", "novo ponto de rede"}, 25},
	{"novo ponto de rede", []string{"novo ponto de rede", "instalar ponto", "ponto de rede novo"}, 25},
	{"equipamentos", []string{"equipamento", "equipamentos", "hardware"}, 10},

	// System requests
	{"acesso a sistema", []string{"acesso a sistema", "acesso ao sistema", "permissão no sistema", "acesso sistema"}, 25},
	{"atualização / parametrização", []string{"atualização", "parametrização", "atualizar sistema", "configurar sistema"}, 25},
	{"solicitação geral de sistema", []string{"solicitação de sistema", "pedido de sistema"}, 20},
	{"sistemas", []string{"sistema", "sistemas", "salesforce", "rp", "siscom", "anews", "arion", "backstage", "emam"}, 10},

	// Software requests
	{"instalação", []string{"instalar", "instalação", "instalar programa", "instalar software", "instalar aplicativo"}, 25},
	{"atualização", []string{"atualizar", "atualização", "atualizar software", "atualizar programa"}, 25},
	{"licenciamento / renovação", []string{"licenciamento", "renovação", "renovar licença", "nova licença"}, 25},
	{"software", []string{"software", "programa", "aplicativo", "app"}, 10},

	// Printer incidents
	{"não imprime", []string{"não imprime", "não imprimiu", "não está imprimindo", "não imprime nada"}, 25},
	{"falha de conexão", []string{"falha de conexão", "spooler", "erro de conexão"}, 25},
	{"papel preso", []string{"papel preso", "papel travado", "papel enroscado"}, 25},
	{"qualidade de impressão", []string{"qualidade ruim", "borrão", "manchado", "claro demais", "escuro demais"}, 20},
	{"impressoras", []string{"impressoras", "impressora", "printer", "printers", "impressão", "imprimir", "papel", "toner", "tinta"}, 20},

	// Computer incidents
	{"não liga", []string{"não liga", "não liga mais", "não inicia", "não inicia o computador"}, 25},
	{"travando", []string{"computador travando", "pc travando", "notebook travando", "máquina travando"}, 25},
	{"lentidão", []string{"lentidão", "lento", "muito lento", "está lento", "demora muito"}, 25},
	{"tela azul", []string{"tela azul", "blue screen", "erro de sistema", "crash do sistema"}, 25},
	{"falha após atualização", []string{"falha após atualização", "problema após atualização", "erro após atualizar"}, 25},

	// Network incidents
	{"sem conexão", []string{"sem conexão", "sem internet", "sem wifi", "sem wi-fi", "não conecta", "não conecta à internet"}, 25},
	{"switch / roteador", []string{"switch", "roteador", "router", "equipamento de rede"}, 20},
	{"infraestrutura de rede", []string{"infraestrutura de rede", "equipamento de rede", "ponto de rede"}, 15},

	// Server incidents
	{"inacessível", []string{"inacessível", "sem resposta", "não responde", "indisponível"}, 25},
	{"serviço indisponível", []string{"serviço indisponível", "vm indisponível", "máquina virtual indisponível"}, 25},
	{"servidores", []string{"servidor", "servidores", "server", "vm", "virtual", "máquina virtual"}, 15},

	// Access incidents
	{"falha de login", []string{"falha de login", "senha inválida", "senha incorreta", "não consegue fazer login"}, 25},
	{"usuário bloqueado", []string{"usuário bloqueado", "conta bloqueada", "conta desativada"}, 25},
	{"acesso remoto", []string{"acesso remoto", "vpn", "remoto", "remote", "erro de conexão vpn"}, 15},
	{"pastas de rede", []string{"pastas de rede", "pasta de rede", "não acessível", "não consegue acessar pasta"}, 20},
	{"ad", []string{"ad", "active directory", "diretório ativo", "domínio", "domain"}, 12},

	// System incidents
	{"indisponibilidade de sistema", []string{"indisponível", "sistema fora do ar", "sistema não está funcionando", "sistema inacessível"}, 25},
	{"falha em processo", []string{"falha em processo", "erro no processo", "processo com erro"}, 25},
	{"problema geral de sistema", []string{"problema geral", "sistema com problema"}, 20},
	{"sistema", []string{"sistema", "sistemas", "salesforce", "rp", "siscom", "anews", "arion", "backstage", "emam"}, 10},

	// Software incidents
	{"travamento", []string{"travamento", "travado", "travou", "congelou", "congelado"}, 30},
	{"falha ao abrir / travamento", []string{"falha ao abrir", "não abre", "não consegue abrir"}, 25},
	{"erro de execução", []string{"erro de execução", "erro ao executar", "não executa"}, 25},
	{"desempenho lento", []string{"desempenho lento", "software lento", "programa lento"}, 25},
	{"atualização com problema", []string{"atualização com problema", "problema após atualizar software"}, 25},
	{"office", []string{"office", "word", "excel", "powerpoint", "outlook"}, 25},
	{"software", []string{"software", "programa", "aplicativo", "app"}, 10},

	// Peripherals
	{"periféricos", []string{"periféricos", "periférico", "mouse", "teclado", "monitor", "headset"}, 15},
	{"monitor sem sinal", []string{"monitor sem sinal", "monitor não liga", "tela preta"}, 25},
	{"mouse com falha", []string{"mouse com falha", "mouse não funciona", "mouse quebrado"}, 25},
	{"teclado com falha", []string{"teclado com falha", "teclado não funciona", "teclado quebrado"}, 25},

	// Generic, lowest priority
	{"hardware", []string{"hardware"}, 8},
	{"computadores", []string{"computador", "computadores", "notebook", "pc"}, 8},
	{"equipamento", []string{"equipamento", "equipamentos"}, 5},
	{"incidente", []string{"incidente"}, 3},
	{"requisição", []string{"requisição", "solicitação", "pedido", "novo"}, 3},
}

// incidentWords flag a ticket as describing something broken.
var incidentWords = []string{
	"problema", "erro", "falha", "não funciona", "não está funcionando",
	"não imprime", "não liga", "travando", "lento", "sem conexão",
	"indisponível", "inacessível", "bloqueado", "tela azul", "crash",
	"travamento", "não abre", "não responde", "sem resposta",
}

// requestWords flag a ticket as asking for something new.
var requestWords = []string{
	"solicitar", "solicitação", "pedido", "preciso", "precisamos",
	"quero", "gostaria", "instalar", "instalação", "novo", "nova",
	"criar", "criação", "adicionar", "configurar",
}

// softwareIndicators bias scoring toward software branches of the tree.
var softwareIndicators = []string{
	"office", "word", "excel", "powerpoint", "outlook",
	"software", "programa", "aplicativo", "app",
}
