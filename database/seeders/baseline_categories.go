package seeders

import (
	"log"
	"sort"

	"helpdesk-backend/models/category"

	"gorm.io/gorm"
)

// SeedBaselineCategories plants the baseline ITSM category tree so ticket
// classification works before the first sync against the live ITSM runs.
// Only missing nodes are inserted; an existing mirror is left untouched.
func SeedBaselineCategories(db *gorm.DB) error {
	log.Printf("🔍 Checking category mirror data integrity...")

	baseline := []category.Category{
		{GlpiID: 1, Name: "TI", FullPath: "TI"},

		{GlpiID: 2, Name: "Incidente", FullPath: "TI > Incidente"},
		{GlpiID: 3, Name: "Requisição", FullPath: "TI > Requisição"},
		{GlpiID: 4, Name: "Mudança", FullPath: "TI > Mudança"},

		{GlpiID: 10, Name: "Acesso", FullPath: "TI > Requisição > Acesso"},
		{GlpiID: 11, Name: "AD", FullPath: "TI > Requisição > Acesso > AD"},
		{GlpiID: 12, Name: "Criação de Usuário / Conta", FullPath: "TI > Requisição > Acesso > AD > Criação de Usuário / Conta"},
		{GlpiID: 13, Name: "Liberação de Rede / Wi-Fi", FullPath: "TI > Requisição > Acesso > AD > Liberação de Rede / Wi-Fi"},
		{GlpiID: 14, Name: "Acesso Remoto / VPN", FullPath: "TI > Requisição > Acesso > AD > Acesso Remoto / VPN"},
		{GlpiID: 15, Name: "Pastas de Rede", FullPath: "TI > Requisição > Acesso > AD > Pastas de Rede"},

		{GlpiID: 20, Name: "Equipamentos", FullPath: "TI > Requisição > Equipamentos"},
		{GlpiID: 21, Name: "Hardware", FullPath: "TI > Requisição > Equipamentos > Hardware"},
		{GlpiID: 22, Name: "Computadores", FullPath: "TI > Requisição > Equipamentos > Hardware > Computadores"},
		{GlpiID: 23, Name: "Novo Equipamento", FullPath: "TI > Requisição > Equipamentos > Hardware > Computadores > Novo Equipamento"},
		{GlpiID: 24, Name: "Reparo / Substituição", FullPath: "TI > Requisição > Equipamentos > Hardware > Computadores > Reparo / Substituição"},
		{GlpiID: 25, Name: "Impressora", FullPath: "TI > Requisição > Equipamentos > Hardware > Impressora"},
		{GlpiID: 26, Name: "Nova Impressora / Instalação", FullPath: "TI > Requisição > Equipamentos > Hardware > Impressora > Nova Impressora / Instalação"},
		{GlpiID: 27, Name: "Solicitação de Toner", FullPath: "TI > Requisição > Equipamentos > Hardware > Impressora > Solicitação de Toner"},
		{GlpiID: 28, Name: "Infraestrutura de Rede", FullPath: "TI > Requisição > Equipamentos > Hardware > Infraestrutura de Rede"},
		{GlpiID: 29, Name: "Servidores", FullPath: "TI > Requisição > Equipamentos > Hardware > Servidores"},
		{GlpiID: 30, Name: "Novo Servidor / VM", FullPath: "TI > Requisição > Equipamentos > Hardware > Servidores > Novo Servidor / VM"},

		{GlpiID: 35, Name: "Sistemas", FullPath: "TI > Requisição > Sistemas"},
		{GlpiID: 36, Name: "Acesso a Sistema", FullPath: "TI > Requisição > Sistemas > Acesso a Sistema"},
		{GlpiID: 37, Name: "Atualização / Parametrização", FullPath: "TI > Requisição > Sistemas > Atualização / Parametrização"},

		{GlpiID: 40, Name: "Software", FullPath: "TI > Requisição > Software"},
		{GlpiID: 41, Name: "Instalação", FullPath: "TI > Requisição > Software > Instalação"},
		{GlpiID: 42, Name: "Atualização", FullPath: "TI > Requisição > Software > Atualização"},
		{GlpiID: 43, Name: "Licenciamento / Renovação", FullPath: "TI > Requisição > Software > Licenciamento / Renovação"},

		{GlpiID: 50, Name: "Acesso", FullPath: "TI > Incidente > Acesso"},
		{GlpiID: 51, Name: "AD", FullPath: "TI > Incidente > Acesso > AD"},
		{GlpiID: 52, Name: "Falha de Login", FullPath: "TI > Incidente > Acesso > AD > Falha de Login"},
		{GlpiID: 53, Name: "Usuário Bloqueado", FullPath: "TI > Incidente > Acesso > AD > Usuário Bloqueado"},
		{GlpiID: 54, Name: "Rede / Wi-Fi - Sem Conexão", FullPath: "TI > Incidente > Acesso > AD > Rede / Wi-Fi - Sem Conexão"},

		{GlpiID: 60, Name: "Equipamentos", FullPath: "TI > Incidente > Equipamentos"},
		{GlpiID: 61, Name: "Hardware", FullPath: "TI > Incidente > Equipamentos > Hardware"},
		{GlpiID: 62, Name: "Computadores", FullPath: "TI > Incidente > Equipamentos > Hardware > Computadores"},
		{GlpiID: 63, Name: "Não Liga / Travando", FullPath: "TI > Incidente > Equipamentos > Hardware > Computadores > Não Liga / Travando"},
		{GlpiID: 64, Name: "Lentidão", FullPath: "TI > Incidente > Equipamentos > Hardware > Computadores > Lentidão"},
		{GlpiID: 65, Name: "Tela Azul", FullPath: "TI > Incidente > Equipamentos > Hardware > Computadores > Tela Azul"},
		{GlpiID: 66, Name: "Impressoras", FullPath: "TI > Incidente > Equipamentos > Hardware > Impressoras"},
		{GlpiID: 67, Name: "Não Imprime", FullPath: "TI > Incidente > Equipamentos > Hardware > Impressoras > Não Imprime"},
		{GlpiID: 68, Name: "Papel Preso", FullPath: "TI > Incidente > Equipamentos > Hardware > Impressoras > Papel Preso"},
		{GlpiID: 69, Name: "Infraestrutura de Rede", FullPath: "TI > Incidente > Equipamentos > Hardware > Infraestrutura de Rede"},
		{GlpiID: 70, Name: "Servidores", FullPath: "TI > Incidente > Equipamentos > Hardware > Servidores"},
		{GlpiID: 71, Name: "Inacessível", FullPath: "TI > Incidente > Equipamentos > Hardware > Servidores > Inacessível"},
		{GlpiID: 72, Name: "Periféricos", FullPath: "TI > Incidente > Equipamentos > Hardware > Periféricos"},

		{GlpiID: 80, Name: "Sistemas", FullPath: "TI > Incidente > Sistemas"},
		{GlpiID: 81, Name: "Problema de Acesso", FullPath: "TI > Incidente > Sistemas > Problema de Acesso"},
		{GlpiID: 82, Name: "Indisponibilidade de Sistema", FullPath: "TI > Incidente > Sistemas > Indisponibilidade de Sistema"},
		{GlpiID: 83, Name: "Falha em Processo", FullPath: "TI > Incidente > Sistemas > Falha em Processo"},
		{GlpiID: 84, Name: "Problema Geral de Sistema", FullPath: "TI > Incidente > Sistemas > Problema Geral de Sistema"},

		{GlpiID: 90, Name: "Software", FullPath: "TI > Incidente > Software"},
		{GlpiID: 91, Name: "Falha ao Abrir / Travamento", FullPath: "TI > Incidente > Software > Falha ao Abrir / Travamento"},
		{GlpiID: 92, Name: "Erro de Execução", FullPath: "TI > Incidente > Software > Erro de Execução"},
		{GlpiID: 93, Name: "Desempenho Lento", FullPath: "TI > Incidente > Software > Desempenho Lento"},
		{GlpiID: 94, Name: "Office", FullPath: "TI > Incidente > Software > Office"},

		{GlpiID: 100, Name: "Gestão de Mudança", FullPath: "TI > Mudança > Gestão de Mudança"},
		{GlpiID: 101, Name: "Programada", FullPath: "TI > Mudança > Gestão de Mudança > Programada"},
		{GlpiID: 102, Name: "Instalação de Equipamento", FullPath: "TI > Mudança > Gestão de Mudança > Programada > Instalação de Equipamento"},
		{GlpiID: 103, Name: "Atualização de Sistema", FullPath: "TI > Mudança > Gestão de Mudança > Programada > Atualização de Sistema"},
		{GlpiID: 104, Name: "Emergencial", FullPath: "TI > Mudança > Gestão de Mudança > Emergencial"},
	}

	// Get all existing remote ids from the mirror
	var existingIDs []int
	if err := db.Model(&category.Category{}).Pluck("glpi_id", &existingIDs).Error; err != nil {
		log.Printf("❌ Failed to fetch existing category ids: %v", err)
		return err
	}

	existingIDsMap := make(map[int]bool)
	for _, id := range existingIDs {
		existingIDsMap[id] = true
	}

	var missing []category.Category
	for _, node := range baseline {
		if !existingIDsMap[node.GlpiID] {
			missing = append(missing, node)
		}
	}

	log.Printf("📊 Data integrity check:")
	log.Printf("   Expected categories: %d", len(baseline))
	log.Printf("   Existing categories: %d", len(existingIDs))
	log.Printf("   Missing categories: %d", len(missing))

	if len(missing) == 0 {
		log.Printf("✅ All baseline categories are already present. No seeding needed.")
		return nil
	}

	// Parents must exist before their children so links resolve
	sort.SliceStable(missing, func(i, j int) bool {
		return len(category.SplitPath(missing[i].FullPath)) < len(category.SplitPath(missing[j].FullPath))
	})

	log.Printf("🌱 Seeding %d missing categories...", len(missing))

	byPath := make(map[string]uint)
	var known []category.Category
	if err := db.Find(&known).Error; err == nil {
		for i := range known {
			byPath[known[i].FullPath] = known[i].ID
		}
	}

	successCount := 0
	failureCount := 0

	for _, node := range missing {
		parts := category.SplitPath(node.FullPath)
		if len(parts) > 1 {
			if parentID, ok := byPath[category.JoinPath(parts[:len(parts)-1])]; ok {
				node.ParentID = &parentID
			}
		}

		if err := db.Create(&node).Error; err != nil {
			log.Printf("❌ Failed to seed category %s (%d): %v", node.Name, node.GlpiID, err)
			failureCount++
		} else {
			byPath[node.FullPath] = node.ID
			successCount++
		}
	}

	log.Printf("🎉 Seeding completed! Successfully inserted %d categories, %d failures", successCount, failureCount)
	return nil
}
